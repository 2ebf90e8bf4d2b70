package index

import (
	"bytes"
	"io"
)

// CountLines scans size bytes of r and returns the number of lines, where
// a final line without a terminator still counts and an empty input has
// none.
func CountLines(r io.ReaderAt, size int64) (int, error) {
	if size == 0 {
		return 0, nil
	}

	// Read in chunks to find newlines
	const chunkSize = 64 * 1024 // 64KB chunks
	buf := make([]byte, chunkSize)

	var (
		pos   int64
		count int
		last  byte
	)
	for pos < size {
		readSize := chunkSize
		if pos+int64(readSize) > size {
			readSize = int(size - pos)
		}

		n, err := r.ReadAt(buf[:readSize], pos)
		if err != nil && !(err == io.EOF && n == readSize) {
			return 0, err
		}

		chunk := buf[:n]
		count += bytes.Count(chunk, []byte{'\n'})
		if n > 0 {
			last = chunk[n-1]
		}
		pos += int64(n)
	}

	if last != '\n' {
		count++
	}
	return count, nil
}

// Digits returns the number of decimal digits needed to print n.
func Digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
