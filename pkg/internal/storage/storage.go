// Package storage provides local tone storage backends.
package storage

import (
	"errors"
	"io"
)

var (
	ErrNotFound = errors.New("storage: tone not found")
	ErrInvalid  = errors.New("storage: invalid tone reference")
	ErrClosed   = errors.New("storage: handle closed")
)

// readAtBounds clamps a positional read to size and reports io.EOF the way
// io.ReaderAt does when the read reaches the end.
func readAtBounds(size int64, p []byte, off int64) (n int, eof bool, err error) {
	if off < 0 {
		return 0, false, ErrInvalid
	}
	if off >= size {
		return 0, true, io.EOF
	}
	n = len(p)
	if remain := size - off; int64(n) > remain {
		return int(remain), true, nil
	}
	return n, false, nil
}
