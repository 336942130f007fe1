// Package datasource defines how pipeline stages obtain raw input bytes.
package datasource

import (
	"context"
	"io"
)

// Source yields a sequential stream.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// ReaderAtCloser is random-access input, as required by container formats
// that keep their directory at the end of the file.
type ReaderAtCloser interface {
	io.ReaderAt
	io.Closer
}

// RandomAccessSource yields random-access input plus its size in bytes.
type RandomAccessSource interface {
	Source
	OpenAt(ctx context.Context) (ReaderAtCloser, int64, error)
}
