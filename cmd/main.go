package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jaki95/playlist-maker/config"
	"github.com/jaki95/playlist-maker/internal/batch"
	"github.com/jaki95/playlist-maker/internal/cover"
	"github.com/jaki95/playlist-maker/internal/sanitize"
	"github.com/jaki95/playlist-maker/internal/spotify"
	"github.com/jaki95/playlist-maker/internal/storage"
	"github.com/jaki95/playlist-maker/internal/tag"
	"github.com/jaki95/playlist-maker/internal/tracklist"
	"github.com/jaki95/playlist-maker/internal/youtube"
)

// fileTagger adapts the tag package to the batch processor.
type fileTagger struct{}

func (fileTagger) Write(path string, meta tag.Metadata) error {
	return tag.Write(path, meta)
}

func (fileTagger) EmbedCover(path string, jpeg []byte) error {
	return tag.EmbedCover(path, jpeg)
}

func main() {
	defaultConfig := "./config/config.yaml"
	if env := os.Getenv("PLAYLIST_MAKER_CONFIG"); env != "" {
		defaultConfig = env
	}

	configPath := flag.String("config", defaultConfig, "Path to the config file")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	format := flag.String("format", "", "Audio format, mp3 or m4a (overrides config)")
	albumOrder := flag.Bool("album", false, "Sort playlist tracks by album and track number instead of playlist order")
	noNumbering := flag.Bool("no-numbering", false, "Do not prefix filenames with the track index")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <spotify-url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	rawURL := flag.Arg(0)
	if rawURL == "" {
		flag.Usage()
		log.Fatal("Missing required argument: Spotify track, album or playlist URL")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(cfg.LogLevel),
	})))

	if *outputDir != "" {
		cfg.Download.OutputDir = *outputDir
	}
	if *format != "" {
		cfg.FileExtension = *format
	}
	if cfg.FileExtension != "mp3" && cfg.FileExtension != "m4a" {
		log.Fatalf("Unsupported audio format: %s", cfg.FileExtension)
	}
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		log.Fatal("Missing Spotify credentials: set spotify.client_id and spotify.client_secret or the SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables")
	}

	ctx := context.Background()

	if _, _, err := spotify.ParseURL(rawURL); err != nil {
		log.Fatal(err)
	}

	mode := spotify.SortKeep
	if *albumOrder {
		mode = spotify.SortAlbum
	}

	client, err := spotify.New(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	if err != nil {
		log.Fatal(err)
	}

	list, err := client.Tracklist(ctx, rawURL, mode)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("fetched tracklist", "name", list.Name, "tracks", len(list.Tracks))

	if err := os.MkdirAll(cfg.Download.OutputDir, 0755); err != nil {
		log.Fatal(err)
	}

	// The tracklist CSV is the durable record of the batch input; the batch
	// itself runs off the rows read back from it.
	csvPath := filepath.Join(cfg.Download.OutputDir, sanitize.Name(list.Name, sanitize.DefaultMaxLength)+".csv")
	if err := tracklist.Write(csvPath, list, mode); err != nil {
		log.Fatal(err)
	}

	batchList, err := tracklist.Read(csvPath)
	if err != nil {
		log.Fatal(err)
	}

	ytClient := youtube.NewClient(
		cfg.Download.YTDLPBinary,
		youtube.WithSearchTimeout(time.Duration(cfg.Download.SearchTimeoutSeconds)*time.Second),
	)

	processor := batch.New(
		youtube.NewResolver(ytClient),
		ytClient,
		fileTagger{},
		cover.NewFetcher(),
	)

	report, err := processor.Run(ctx, batchList, batch.Options{
		OutputRoot:   cfg.Download.OutputDir,
		Numbered:     !*noNumbering,
		TranscodeMP3: cfg.FileExtension == "mp3",
		FFmpegBinary: cfg.Download.FFmpegBinary,
		YTDLPBinary:  cfg.Download.YTDLPBinary,
	})
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(ctx, cfg.Storage.Type, cfg.Storage.Bucket, cfg.Storage.ObjectPrefix, cfg.Storage.CredentialsFile)
	if err != nil {
		log.Fatal(err)
	}

	batchDir := filepath.Join(cfg.Download.OutputDir, sanitize.Name(batchList.Name, sanitize.DefaultMaxLength))
	publishErr := store.Publish(ctx, batchDir)

	// Close before any exit so the client connection is not leaked.
	if err := store.Close(); err != nil {
		slog.Warn("failed to close storage client", "error", err)
	}
	if publishErr != nil {
		log.Fatal(publishErr)
	}

	if len(report.NotFound) > 0 {
		os.Exit(1)
	}
}
