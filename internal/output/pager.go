package output

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

// DefaultPager is used when nothing else names a pager.
const DefaultPager = "less"

// PagingMode selects when output goes through a pager.
type PagingMode string

const (
	PagingAuto   PagingMode = "auto"
	PagingAlways PagingMode = "always"
	PagingNever  PagingMode = "never"
)

// ParsePagingMode validates a --paging value.
func ParsePagingMode(s string) (PagingMode, error) {
	switch mode := PagingMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case PagingAuto, PagingAlways, PagingNever:
		return mode, nil
	case "":
		return PagingAuto, nil
	}
	return "", fmt.Errorf("unknown paging mode %q (want auto, always or never)", s)
}

// ResolvePager picks the pager command. The flag wins, then the configured
// pager (which already carries MCAT_PAGER), then PAGER.
func ResolvePager(flag, configured string) string {
	for _, c := range []string{flag, configured, os.Getenv("PAGER")} {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return DefaultPager
}

// PagerArgs splits command into argv. A bare less gets the options that
// let it pass colors through and exit when output fits one screen.
func PagerArgs(command string) ([]string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid pager command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty pager command")
	}
	if len(args) == 1 && filepath.Base(args[0]) == "less" {
		args = append(args, "-R", "-F", "-X")
	}
	return args, nil
}

// Pager feeds output to a pager process's standard input.
type Pager struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	log   *slog.Logger
}

// StartPager launches command with its output going to stdout and stderr.
func StartPager(command string, stdout, stderr io.Writer, log *slog.Logger) (*Pager, error) {
	args, err := PagerArgs(command)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	log.Debug("pager started", "args", args, "pid", cmd.Process.Pid)
	return &Pager{cmd: cmd, stdin: stdin, log: log}, nil
}

func (p *Pager) Write(b []byte) (int, error) {
	n, err := p.stdin.Write(b)
	return n, classify(err)
}

// Close ends the pager's input and waits for the user to quit it.
func (p *Pager) Close() error {
	if err := p.stdin.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		p.log.Debug("closing pager input", "err", err)
	}

	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The pager's own status says nothing about the render.
		p.log.Debug("pager exited", "code", exitErr.ExitCode())
		return nil
	}
	return err
}

// Options configures Open.
type Options struct {
	Mode        PagingMode
	Command     string
	Stdout      io.Writer
	Stderr      io.Writer
	Interactive bool // standard output is a terminal
	Log         *slog.Logger
}

// Open returns the sink for a run. If the pager cannot be started the
// output goes directly to Stdout.
func Open(opts Options) Sink {
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	if !shouldPage(opts.Mode, opts.Interactive) {
		return NewDirect(opts.Stdout)
	}

	p, err := StartPager(opts.Command, opts.Stdout, opts.Stderr, opts.Log)
	if err != nil {
		opts.Log.Warn("pager unavailable, writing directly", "pager", opts.Command, "err", err)
		return NewDirect(opts.Stdout)
	}
	return p
}

func shouldPage(mode PagingMode, interactive bool) bool {
	switch mode {
	case PagingAlways:
		return true
	case PagingNever:
		return false
	}
	return interactive
}
