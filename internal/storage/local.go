package storage

import (
	"context"
	"fmt"
	"os"
)

// LocalStorage keeps batch output on the local filesystem. Publishing only
// verifies the directory exists; the batch already wrote everything in place.
type LocalStorage struct{}

func (s *LocalStorage) Publish(ctx context.Context, localDir string) error {
	info, err := os.Stat(localDir)
	if err != nil {
		return fmt.Errorf("output directory not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", localDir)
	}
	return nil
}

func (s *LocalStorage) Close() error {
	return nil
}
