package storage

import (
	"context"
	"io"
)

// Source opens import files by key, wherever they live.
type Source interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
