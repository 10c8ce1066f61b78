package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToLocal(t *testing.T) {
	s, err := New(context.Background(), "", "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	s, err = New(context.Background(), "local", "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)
}

func TestNewGCSRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), "gcs", "", "", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(context.Background(), "s3", "", "", "")
	assert.Error(t, err)
}

func TestLocalPublish(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track.m4a"), []byte("audio"), 0644))

	s := &LocalStorage{}
	assert.NoError(t, s.Publish(context.Background(), dir))
	assert.NoError(t, s.Close())
}

func TestLocalPublishMissingDir(t *testing.T) {
	s := &LocalStorage{}
	err := s.Publish(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLocalPublishNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	s := &LocalStorage{}
	err := s.Publish(context.Background(), file)
	assert.Error(t, err)
}
