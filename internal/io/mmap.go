// Package io maps regular files into memory for the line sources.
package io

import (
	"bufio"
	"io"

	"golang.org/x/exp/mmap"
)

// lineBufferSize is the read buffer of Lines. Longer lines are assembled
// by the caller from several reads.
const lineBufferSize = 64 * 1024

// MappedFile is a read-only mapping of a regular file. ReadAt, Len and
// Close come from the mapping.
type MappedFile struct {
	*mmap.ReaderAt
}

// OpenMapped maps path. An empty file maps to an empty reader.
func OpenMapped(path string) (*MappedFile, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &MappedFile{ReaderAt: r}, nil
}

// Size returns the mapped length in bytes.
func (m *MappedFile) Size() int64 {
	return int64(m.Len())
}

// Lines returns a sequential reader over the whole mapping.
func (m *MappedFile) Lines() *bufio.Reader {
	return bufio.NewReaderSize(io.NewSectionReader(m.ReaderAt, 0, m.Size()), lineBufferSize)
}
