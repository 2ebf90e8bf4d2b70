package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/mcat/internal/config"
	"github.com/TimelordUK/mcat/internal/fault"
	"github.com/TimelordUK/mcat/internal/highlight"
	"github.com/TimelordUK/mcat/internal/linerange"
	"github.com/TimelordUK/mcat/internal/printer"
	"github.com/TimelordUK/mcat/internal/render"
	"github.com/TimelordUK/mcat/internal/vcs"
)

type fixedChanges vcs.Changes

func (f fixedChanges) LineChanges(string) vcs.Changes {
	return vcs.Changes(f)
}

type fixture struct {
	out  bytes.Buffer
	errs bytes.Buffer
	opts Options
}

func newFixture(t *testing.T, c printer.Components) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	r := render.NewRenderer(&bytes.Buffer{}, render.ColorNever)
	assets, err := highlight.NewAssets(cfg, r)
	require.NoError(t, err)

	f := &fixture{}
	f.opts = Options{
		Assets: assets,
		Printer: printer.Options{
			Components:     c,
			Theme:          printer.NewTheme(r, &cfg.Theme),
			MinNumberWidth: 4,
			TermWidth:      20,
		},
		Out:        &f.out,
		Errs:       &f.errs,
		ErrorStyle: lipgloss.NewStyle(),
	}
	return f
}

func (f *fixture) run(t *testing.T) (Results, error) {
	t.Helper()
	d, err := New(f.opts)
	require.NoError(t, err)
	return d.Run()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_SingleRange(t *testing.T) {
	f := newFixture(t, printer.Plain)
	f.opts.Files = []string{writeFile(t, "abc.txt", "a\nb\nc\n")}
	f.opts.Ranges = []linerange.LineRange{{Lower: 2, Upper: 2}}

	results, err := f.run(t)
	require.NoError(t, err)
	assert.True(t, results.AllSucceeded())
	assert.Equal(t, "b\n", f.out.String())
}

func TestRun_MultipleRanges(t *testing.T) {
	f := newFixture(t, printer.Numbers)
	f.opts.Files = []string{writeFile(t, "nums.txt", "1\n2\n3\n4\n5\n6\n")}
	f.opts.Ranges = []linerange.LineRange{{Lower: 5, Upper: linerange.Unbounded}, {Lower: 1, Upper: 2}}

	_, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, "   1 1\n   2 2\n   5 5\n   6 6\n", f.out.String())
}

func TestRun_RangeBeyondFile(t *testing.T) {
	f := newFixture(t, printer.Plain)
	f.opts.Files = []string{writeFile(t, "short.txt", "a\nb\n")}
	f.opts.Ranges = []linerange.LineRange{{Lower: 10, Upper: 20}}

	results, err := f.run(t)
	require.NoError(t, err)
	assert.True(t, results.AllSucceeded())
	assert.Empty(t, f.out.String())
}

func TestRun_MissingFileThenValid(t *testing.T) {
	f := newFixture(t, printer.Numbers)
	missing := filepath.Join(t.TempDir(), "missing.txt")
	f.opts.Files = []string{missing, writeFile(t, "ok.txt", "a\nb\nc\n")}

	results, err := f.run(t)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.False(t, results.AllSucceeded())
	assert.Equal(t, 1, ExitCode(results, err))

	assert.Equal(t, "   1 a\n   2 b\n   3 c\n", f.out.String())

	diag := f.errs.String()
	assert.Equal(t, 1, strings.Count(diag, "\n"), "exactly one diagnostic")
	assert.Equal(t, "[mcat error]: '"+missing+"': no such file or directory\n", diag)
}

func TestRun_DirectoryIsPerFile(t *testing.T) {
	f := newFixture(t, printer.Plain)
	f.opts.Files = []string{t.TempDir(), writeFile(t, "ok.txt", "x\n")}

	results, err := f.run(t)
	require.NoError(t, err)
	assert.False(t, results.AllSucceeded())
	assert.Contains(t, f.errs.String(), "is a directory")
	assert.Equal(t, "x\n", f.out.String())
}

func TestRun_NumberingRestartsPerFile(t *testing.T) {
	f := newFixture(t, printer.Numbers)
	f.opts.Files = []string{writeFile(t, "a.txt", "a\nb\n"), writeFile(t, "b.txt", "c\n")}

	_, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, "   1 a\n   2 b\n   1 c\n", f.out.String())
}

func TestRun_ModifiedMarker(t *testing.T) {
	f := newFixture(t, printer.Changes)
	f.opts.Files = []string{writeFile(t, "m.txt", "a\nb\nc\n")}
	f.opts.Changes = fixedChanges{2: vcs.Modified}

	_, err := f.run(t)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(f.out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  a", lines[0])
	assert.Equal(t, "~ b", lines[1])
	assert.Equal(t, "  c", lines[2])
}

func TestRun_StdinHasNoChanges(t *testing.T) {
	f := newFixture(t, printer.Header|printer.Changes)
	f.opts.Stdin = strings.NewReader("a\n")
	f.opts.Changes = fixedChanges{1: vcs.Added}

	_, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, "File: STDIN\na\n", f.out.String())
}

// closingWriter accepts limit writes then reports a broken pipe.
type closingWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *closingWriter) Write(p []byte) (int, error) {
	if w.limit == 0 {
		return 0, fault.ErrBrokenPipe
	}
	w.limit--
	return w.buf.Write(p)
}

func TestRun_BrokenPipeAfterHeader(t *testing.T) {
	f := newFixture(t, printer.Header)
	out := &closingWriter{limit: 1}
	f.opts.Out = out
	f.opts.Files = []string{writeFile(t, "a.txt", "a\nb\n"), writeFile(t, "b.txt", "c\n")}

	results, err := f.run(t)
	require.Error(t, err)
	assert.Equal(t, fault.KindBrokenPipe, fault.Of(err))
	assert.Len(t, results, 1, "no further files after the pipe closed")
	assert.Equal(t, 0, ExitCode(results, err))
	assert.Empty(t, f.errs.String())
	assert.True(t, strings.HasPrefix(out.buf.String(), "File: "))
}

// failAfter yields data, then fails every further read.
type failAfter struct {
	data string
}

func (f *failAfter) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, errors.New("device lost")
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestRun_ReadFailureIsPerFile(t *testing.T) {
	f := newFixture(t, printer.Numbers)
	f.opts.Stdin = &failAfter{data: "first\n"}
	f.opts.Files = []string{"-", writeFile(t, "ok.txt", "a\nb\nc\n")}

	results, err := f.run(t)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, fault.KindFile, fault.Of(results[0].Err))
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, ExitCode(results, err))

	assert.Equal(t, "[mcat error]: 'STDIN': device lost\n", f.errs.String())
	// Output already written for the failed input stays; the next file
	// numbers from 1.
	assert.Equal(t, "   1 first\n   1 a\n   2 b\n   3 c\n", f.out.String())
}

func TestNew_UnknownLanguageIsFatal(t *testing.T) {
	f := newFixture(t, printer.Plain)
	f.opts.Language = "no-such-language"

	_, err := New(f.opts)
	require.Error(t, err)
	assert.Equal(t, fault.KindFatal, fault.Of(err))
}

func TestRun_LanguageOverride(t *testing.T) {
	f := newFixture(t, printer.Plain)
	f.opts.Language = "go"
	f.opts.Files = []string{writeFile(t, "code.txt", "package main\n")}

	_, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", f.out.String())
}

func TestRun_InvalidUTF8Degrades(t *testing.T) {
	f := newFixture(t, printer.Plain)
	f.opts.Files = []string{writeFile(t, "bin.dat", "ok\n\xff\xfe\n")}

	results, err := f.run(t)
	require.NoError(t, err)
	assert.True(t, results.AllSucceeded())
	assert.Equal(t, "ok\n�\n", f.out.String())
}

func TestExitCode(t *testing.T) {
	ok := Results{{Name: "a"}}
	failed := Results{{Name: "a", Err: errors.New("x")}}

	assert.Equal(t, 0, ExitCode(ok, nil))
	assert.Equal(t, 1, ExitCode(failed, nil))
	assert.Equal(t, 1, ExitCode(ok, fault.Fatalf("boom")))
	assert.Equal(t, 0, ExitCode(failed, fault.Fatal(fault.ErrBrokenPipe)))
}
