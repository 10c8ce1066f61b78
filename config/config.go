package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel      int    `yaml:"log_level"`
	FileExtension string `yaml:"file_extension"`

	Spotify  SpotifyConfig  `yaml:"spotify"`
	Download DownloadConfig `yaml:"download"`
	Storage  StorageConfig  `yaml:"storage"`
}

type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

type DownloadConfig struct {
	OutputDir            string `yaml:"output_dir"`
	SearchTimeoutSeconds int    `yaml:"search_timeout_seconds"`
	FFmpegBinary         string `yaml:"ffmpeg_binary"`
	YTDLPBinary          string `yaml:"ytdlp_binary"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	// Set defaults if not provided
	if config.FileExtension == "" {
		config.FileExtension = "mp3"
	}

	if config.Spotify.ClientID == "" {
		config.Spotify.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}

	if config.Spotify.ClientSecret == "" {
		config.Spotify.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}

	if config.Download.OutputDir == "" {
		config.Download.OutputDir = "output"
	}

	if config.Download.SearchTimeoutSeconds == 0 {
		config.Download.SearchTimeoutSeconds = 60
	}

	if config.Download.FFmpegBinary == "" {
		config.Download.FFmpegBinary = "ffmpeg"
	}

	if config.Download.YTDLPBinary == "" {
		config.Download.YTDLPBinary = "yt-dlp"
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "local"
	}

	return config, nil
}
