// Package fault classifies the failures of a render run.
//
// Every error that leaves a component is either Fatal (the run cannot
// proceed), File (isolated to one input) or BrokenPipe (the output consumer
// went away). Callers classify with errors.As or Of rather than inspecting
// messages.
package fault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// Kind is the class of a failure.
type Kind int

const (
	// KindFatal aborts the whole run.
	KindFatal Kind = iota
	// KindFile is isolated to one file; the run continues.
	KindFile
	// KindBrokenPipe means the output consumer closed its end.
	KindBrokenPipe
)

func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindFile:
		return "file"
	case KindBrokenPipe:
		return "broken pipe"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrBrokenPipe is returned by output sinks once the consumer has gone away.
var ErrBrokenPipe = errors.New("broken pipe")

// Error carries a classified cause.
type Error struct {
	Kind Kind
	Path string // empty unless the failure belongs to one file
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("'%s': %s", e.Path, describe(e.Err))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// describe drops the path an *os.PathError would repeat.
func describe(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// Fatal wraps err as a run-aborting failure.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	if IsBrokenPipe(err) {
		return &Error{Kind: KindBrokenPipe, Err: err}
	}
	return &Error{Kind: KindFatal, Err: err}
}

// Fatalf formats a run-aborting failure.
func Fatalf(format string, args ...any) error {
	return &Error{Kind: KindFatal, Err: fmt.Errorf(format, args...)}
}

// File wraps err as a failure of the named input. A broken pipe stays a
// broken pipe, since it says nothing about the file.
func File(path string, err error) error {
	if err == nil {
		return nil
	}
	if IsBrokenPipe(err) {
		return &Error{Kind: KindBrokenPipe, Err: err}
	}
	return &Error{Kind: KindFile, Path: path, Err: err}
}

// Of reports the kind of err. Unclassified errors are fatal.
func Of(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if IsBrokenPipe(err) {
		return KindBrokenPipe
	}
	return KindFatal
}

// IsBrokenPipe reports whether err means the write side lost its reader.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, ErrBrokenPipe) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrClosedPipe)
}
