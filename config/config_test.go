package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create a test config file
	configPath := filepath.Join(tempDir, "test_config.yaml")
	configContent := `
log_level: -4
file_extension: m4a
spotify:
  client_id: test-id
  client_secret: test-secret
download:
  output_dir: /tmp/music
  search_timeout_seconds: 30
storage:
  type: gcs
  bucket: my-bucket
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	// Test loading the config
	cfg, err := Load(configPath)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "m4a", cfg.FileExtension)
	assert.Equal(t, "test-id", cfg.Spotify.ClientID)
	assert.Equal(t, "test-secret", cfg.Spotify.ClientSecret)
	assert.Equal(t, "/tmp/music", cfg.Download.OutputDir)
	assert.Equal(t, 30, cfg.Download.SearchTimeoutSeconds)
	assert.Equal(t, "gcs", cfg.Storage.Type)
	assert.Equal(t, "my-bucket", cfg.Storage.Bucket)
}

func TestLoadDefaults(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "minimal_config.yaml")
	err := os.WriteFile(configPath, []byte("log_level: 0\n"), 0644)
	assert.NoError(t, err)

	cfg, err := Load(configPath)

	assert.NoError(t, err)
	assert.Equal(t, "mp3", cfg.FileExtension)
	assert.Equal(t, "output", cfg.Download.OutputDir)
	assert.Equal(t, 60, cfg.Download.SearchTimeoutSeconds)
	assert.Equal(t, "ffmpeg", cfg.Download.FFmpegBinary)
	assert.Equal(t, "yt-dlp", cfg.Download.YTDLPBinary)
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoadEmptyFile(t *testing.T) {
	tempDir := t.TempDir()

	// An empty file is valid YAML and must load as an all-defaults config.
	configPath := filepath.Join(tempDir, "empty.yaml")
	err := os.WriteFile(configPath, []byte(""), 0644)
	assert.NoError(t, err)

	cfg, err := Load(configPath)

	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "mp3", cfg.FileExtension)
	assert.Equal(t, "output", cfg.Download.OutputDir)
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoadSpotifyEnvFallback(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "env_config.yaml")
	err := os.WriteFile(configPath, []byte("log_level: 0\n"), 0644)
	assert.NoError(t, err)

	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")

	cfg, err := Load(configPath)

	assert.NoError(t, err)
	assert.Equal(t, "env-id", cfg.Spotify.ClientID)
	assert.Equal(t, "env-secret", cfg.Spotify.ClientSecret)
}

func TestLoadNonExistentFile(t *testing.T) {
	// Test loading a non-existent config file
	cfg, err := Load("non_existent_file.yaml")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "invalid_config.yaml")
	configContent := `
log_level: -4
file_extension: mp3
invalid_yaml: [this is not valid yaml
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	cfg, err := Load(configPath)

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
