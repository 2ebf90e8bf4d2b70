package source

import (
	"os"
	"syscall"

	"github.com/TimelordUK/mcat/internal/index"
	mcatio "github.com/TimelordUK/mcat/internal/io"
)

// FileSource provides lines from a memory-mapped regular file
type FileSource struct {
	lineReader
	file      *mcatio.MappedFile
	lineCount int
	path      string
}

// NewFileSource creates a new file source
func NewFileSource(path string) (*FileSource, error) {
	file, err := mcatio.OpenMapped(path)
	if err != nil {
		return nil, err
	}

	lineCount, err := index.CountLines(file, file.Size())
	if err != nil {
		file.Close()
		return nil, err
	}

	return &FileSource{
		lineReader: lineReader{r: file.Lines()},
		file:       file,
		lineCount:  lineCount,
		path:       path,
	}, nil
}

// LineCount returns total number of lines
func (s *FileSource) LineCount() (int, bool) {
	return s.lineCount, true
}

// Name returns the path as given
func (s *FileSource) Name() string {
	return s.path
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}

// Close closes the file source
func (s *FileSource) Close() error {
	return s.file.Close()
}

// Open opens path for reading. Regular files are mapped; anything else
// readable (pipes, devices) is streamed. "-" and "" mean standard input.
func Open(path string) (LineSource, error) {
	if path == "" || path == "-" {
		return NewStdinSource(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: path, Err: syscall.EISDIR}
	}
	if info.Mode().IsRegular() {
		return NewFileSource(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStreamSource(f, path, path), nil
}
