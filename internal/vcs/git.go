package vcs

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Provider computes the line changes of one file. It returns nil when the
// file has no version control association or no local modifications.
type Provider interface {
	LineChanges(path string) Changes
}

// GitProvider compares a file's working tree contents with its index
// entry.
type GitProvider struct {
	log *slog.Logger
}

// NewGitProvider creates a git-backed provider
func NewGitProvider(log *slog.Logger) *GitProvider {
	return &GitProvider{log: log}
}

// LineChanges diffs the index blob of path against the file on disk.
func (g *GitProvider) LineChanges(path string) Changes {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	dir, base := filepath.Split(abs)

	indexed, err := newGitCommand(dir, "cat-file", "-p", ":./"+base).run()
	if err != nil {
		g.log.Debug("no git changes", "path", path, "err", err)
		return nil
	}

	current, err := os.ReadFile(abs)
	if err != nil {
		g.log.Debug("read for diff failed", "path", path, "err", err)
		return nil
	}

	changes := ComputeChanges(indexed, string(current))
	g.log.Debug("git changes", "path", path, "lines", len(changes))
	return changes
}

// gitCommand represents a git command run in a directory.
type gitCommand struct {
	dir  string
	args []string
}

// newGitCommand creates a new git command.
func newGitCommand(dir string, args ...string) *gitCommand {
	return &gitCommand{dir: dir, args: args}
}

// run executes the git command and returns its stdout.
func (c *gitCommand) run() (string, error) {
	cmd := exec.Command("git", c.args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s", strings.Join(c.args, " "), strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
