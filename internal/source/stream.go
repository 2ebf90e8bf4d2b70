package source

import (
	"bufio"
	"io"
	"os"
)

// StreamSource provides lines from a non-seekable reader such as stdin
type StreamSource struct {
	lineReader
	closer io.Closer
	name   string
	path   string
}

// NewStreamSource wraps r. When r is an io.Closer, Close closes it.
func NewStreamSource(r io.Reader, name, path string) *StreamSource {
	s := &StreamSource{
		lineReader: lineReader{r: bufio.NewReaderSize(r, 64*1024)},
		name:       name,
		path:       path,
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// NewStdinSource reads standard input. Closing it leaves stdin open.
func NewStdinSource() *StreamSource {
	return NewStreamSource(io.NopCloser(os.Stdin), StdinName, "")
}

// LineCount is unknown for streams
func (s *StreamSource) LineCount() (int, bool) {
	return 0, false
}

// Name returns the display name
func (s *StreamSource) Name() string {
	return s.name
}

// Path returns the file path, "" for stdin
func (s *StreamSource) Path() string {
	return s.path
}

// Close closes the underlying reader
func (s *StreamSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
