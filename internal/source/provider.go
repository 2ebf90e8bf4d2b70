package source

import (
	"bufio"
	"errors"
	"io"
)

// StdinName is the display name of standard input.
const StdinName = "STDIN"

// LineSource is the core abstraction for reading raw lines.
// The render loop only interacts with this interface.
type LineSource interface {
	// ReadLine returns the next line including its '\n' terminator, if any.
	// It returns io.EOF once no bytes remain. The slice is only valid
	// until the next call.
	ReadLine() ([]byte, error)

	// Peek returns up to the first line of input without consuming it.
	Peek() []byte

	// Name returns the display name.
	Name() string

	// Path returns the file system path, or "" for standard input.
	Path() string

	// LineCount returns the total line count when it is known up front.
	LineCount() (int, bool)

	// Close releases the underlying handle.
	Close() error
}

const peekLimit = 1024

// lineReader implements the line protocol shared by every source.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func (l *lineReader) ReadLine() ([]byte, error) {
	l.buf = l.buf[:0]
	for {
		chunk, err := l.r.ReadSlice('\n')
		l.buf = append(l.buf, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF {
			if len(l.buf) == 0 {
				return nil, io.EOF
			}
			return l.buf, nil
		}
		if err != nil {
			return nil, err
		}
		return l.buf, nil
	}
}

// Peek looks only at what one read delivers, so a slow pipe is never
// waited on for more.
func (l *lineReader) Peek() []byte {
	if _, err := l.r.Peek(1); err != nil {
		return nil
	}
	data, _ := l.r.Peek(min(l.r.Buffered(), peekLimit))
	for i, b := range data {
		if b == '\n' {
			return data[:i+1]
		}
	}
	return data
}
