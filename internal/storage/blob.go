package storage

import (
	"context"
	"io"
)

// BlobStore holds derived artifacts such as exported recap snapshots. It is
// never the system of record.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
	SignedURL(key string) (string, error) // fs returns "file://..." for dev
}
