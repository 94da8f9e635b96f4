// Package storage defines the blob persistence interface and its backends.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Blob is a key/value store for opaque JSON blobs. Put is last-writer-wins;
// overlapping writers are an accepted risk of the deployment's scheduling
// contract, not something the store guards against.
type Blob interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}
