package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runMcat(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MCAT_CONFIG_PATH", filepath.Join(dir, "config.toml"))
	t.Setenv("MCAT_LOG_FILE", "")
	t.Setenv("MCAT_THEME", "")
	t.Setenv("MCAT_PAGER", "")

	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	defer stdout.Close()
	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)
	defer stderr.Close()

	code := run(args, strings.NewReader(stdin), stdout, stderr)

	out, err := os.ReadFile(stdout.Name())
	require.NoError(t, err)
	errOut, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	return result{code: code, stdout: string(out), stderr: string(errOut)}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_Plain(t *testing.T) {
	path := writeFile(t, "a.txt", "one\ntwo\n")

	res := runMcat(t, "", "--color", "never", "-p", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "one\ntwo\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRun_NumbersAndRange(t *testing.T) {
	path := writeFile(t, "a.txt", "a\nb\nc\n")

	res := runMcat(t, "", "--color", "never", "--style", "numbers", "-r", "2:2", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "   2 b\n", res.stdout)
}

func TestRun_Stdin(t *testing.T) {
	res := runMcat(t, "from stdin\n", "--color", "never", "--style", "header")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "File: STDIN\nfrom stdin\n", res.stdout)
}

func TestRun_MissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	path := writeFile(t, "ok.txt", "x\n")

	res := runMcat(t, "", "--color", "never", "-n", "--style", "plain", missing, path)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "   1 x\n", res.stdout)
	assert.Equal(t, "[mcat error]: '"+missing+"': no such file or directory\n", res.stderr)
}

func TestRun_FatalErrors(t *testing.T) {
	path := writeFile(t, "a.txt", "x\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad range", []string{"-r", "5:2", path}, "invalid line range"},
		{"unknown theme", []string{"--theme", "no-such-theme", path}, "unknown theme"},
		{"unknown language", []string{"-l", "no-such-language", path}, "unknown syntax"},
		{"bad style", []string{"--style", "sparkles", path}, "unknown style component"},
		{"bad flag", []string{"--frobnicate"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runMcat(t, "", append([]string{"--color", "never"}, tt.args...)...)
			assert.Equal(t, 1, res.code)
			assert.Empty(t, res.stdout)
			assert.True(t, strings.HasPrefix(res.stderr, "[mcat error]: "), res.stderr)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestRun_ListThemes(t *testing.T) {
	res := runMcat(t, "", "--list-themes")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, strings.Split(res.stdout, "\n"), "monokai")
}

func TestRun_ListLanguages(t *testing.T) {
	res := runMcat(t, "", "--color", "never", "--list-languages")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "*.go")
}

func TestRun_ConfigCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcat", "config.toml")

	// runMcat points MCAT_CONFIG_PATH at its own directory, so call run
	// directly with an explicit path.
	t.Setenv("MCAT_CONFIG_PATH", path)
	t.Setenv("MCAT_LOG_FILE", "")

	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	defer stdout.Close()

	assert.Equal(t, 0, run([]string{"config", "path"}, nil, stdout, stdout))
	assert.Equal(t, 0, run([]string{"config", "init"}, nil, stdout, stdout))
	assert.FileExists(t, path)
	assert.Equal(t, 1, run([]string{"config", "init"}, nil, stdout, stdout), "existing file is kept")

	out, err := os.ReadFile(stdout.Name())
	require.NoError(t, err)
	assert.Contains(t, string(out), path+"\n")
	assert.Contains(t, string(out), "already exists")
}

func TestRun_TabsPassThroughByDefault(t *testing.T) {
	path := writeFile(t, "tabs.txt", "a\tb\n")
	res := runMcat(t, "", "--color", "never", "-p", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "a\tb\n", res.stdout)

	code := writeFile(t, "f.go", "func f() {\n\treturn\n}\n")
	res = runMcat(t, "", "--color", "never", "--style", "numbers", code)
	assert.Equal(t, "   1 func f() {\n   2 \treturn\n   3 }\n", res.stdout)
}

func TestRun_TabsFlagExpands(t *testing.T) {
	path := writeFile(t, "f.go", "func f() {\n\treturn\n}\n")

	res := runMcat(t, "", "--color", "never", "--style", "numbers", "--tabs", "4", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "   1 func f() {\n   2     return\n   3 }\n", res.stdout)

	res = runMcat(t, "", "--color", "never", "-p", "--tabs", "4", path)
	assert.Equal(t, "func f() {\n\treturn\n}\n", res.stdout)
}
