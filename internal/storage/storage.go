// Package storage publishes finished batch directories. The local backend
// leaves files where the batch wrote them; the gcs backend mirrors the
// directory into a Google Cloud Storage bucket.
package storage

import (
	"context"
	"fmt"
)

// Storage publishes a completed batch output directory.
type Storage interface {
	// Publish makes the contents of localDir available at the backend.
	Publish(ctx context.Context, localDir string) error

	Close() error
}

// New creates the storage backend named by kind ("local" or "gcs").
func New(ctx context.Context, kind, bucket, objectPrefix, credentialsFile string) (Storage, error) {
	switch kind {
	case "", "local":
		return &LocalStorage{}, nil
	case "gcs":
		if bucket == "" {
			return nil, fmt.Errorf("gcs storage requires a bucket name")
		}
		return NewGCSStorage(ctx, bucket, objectPrefix, credentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", kind)
	}
}
