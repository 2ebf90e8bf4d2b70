// Package output provides the destinations rendered bytes are written to:
// the process's standard output directly, or a pager subprocess.
//
// Writes that fail because the consumer went away return
// fault.ErrBrokenPipe so callers can stop quietly.
package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/TimelordUK/mcat/internal/fault"
)

// Sink receives rendered output.
type Sink interface {
	io.Writer

	// Close flushes the sink and, for a pager, waits for it to exit.
	Close() error
}

// Direct writes straight to an underlying writer.
type Direct struct {
	w io.Writer
}

// NewDirect returns a sink over w. Closing it does not close w.
func NewDirect(w io.Writer) *Direct {
	return &Direct{w: w}
}

func (d *Direct) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	return n, classify(err)
}

func (d *Direct) Close() error {
	return nil
}

// classify maps a lost reader to fault.ErrBrokenPipe.
func classify(err error) error {
	if err != nil && fault.IsBrokenPipe(err) {
		return fault.ErrBrokenPipe
	}
	return err
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
