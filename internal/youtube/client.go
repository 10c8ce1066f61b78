// Package youtube drives yt-dlp to resolve target tracks against the remote
// video index and fetch the accepted candidate as a local audio file.
package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// DefaultBinary is the downloader backend executable.
	DefaultBinary = "yt-dlp"

	// searchPrefix requests the single best search hit, no playlist
	// expansion.
	searchPrefix = "ytsearch1:"

	// bestAudioFormat prefers an m4a audio stream so the remux path can
	// skip re-encoding.
	bestAudioFormat = "bestaudio[ext=m4a]/bestaudio/best"

	defaultSearchTimeout   = 60 * time.Second
	defaultDownloadTimeout = 30 * time.Minute
)

// Candidate is the remote index's representation of a prospective match.
type Candidate struct {
	ID         string
	Title      string
	Duration   float64 // seconds, 0 when unreported
	WebpageURL string
}

// runner executes the downloader backend. Extracted so tests can substitute
// the real binary.
type runner interface {
	run(ctx context.Context, args ...string) ([]byte, error)
}

type execRunner struct {
	binary string
}

func (r *execRunner) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, newCommandError(cmd, output, err)
	}
	return output, nil
}

// Client wraps a yt-dlp binary for search introspection and downloads.
type Client struct {
	runner          runner
	searchTimeout   time.Duration
	downloadTimeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithSearchTimeout bounds a single search introspection. A timeout is
// reported as an ordinary error so the caller can treat it as a soft
// rejection.
func WithSearchTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.searchTimeout = d
		}
	}
}

// WithDownloadTimeout bounds a single download attempt.
func WithDownloadTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.downloadTimeout = d
		}
	}
}

// NewClient creates a client around the given yt-dlp binary.
func NewClient(binary string, opts ...ClientOption) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	c := &Client{
		runner:          &execRunner{binary: binary},
		searchTimeout:   defaultSearchTimeout,
		downloadTimeout: defaultDownloadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search issues a top-1 search for the query and returns the first entry of
// the result container without downloading anything.
func (c *Client) Search(ctx context.Context, searchQuery string) (*Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	output, err := c.runner.run(ctx,
		"--dump-single-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		searchPrefix+searchQuery,
	)
	if err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(output)
	if entries := doc.Get("entries"); entries.Exists() {
		list := entries.Array()
		if len(list) == 0 {
			return nil, ErrNoResults
		}
		doc = list[0]
	}

	candidate := &Candidate{
		ID:         doc.Get("id").String(),
		Title:      doc.Get("title").String(),
		Duration:   doc.Get("duration").Float(),
		WebpageURL: doc.Get("webpage_url").String(),
	}
	if candidate.ID == "" {
		return nil, ErrNoResults
	}

	slog.Debug("search result",
		"query", searchQuery,
		"id", candidate.ID,
		"title", candidate.Title,
		"duration", candidate.Duration,
	)
	return candidate, nil
}

// Download fetches the candidate's audio stream to the output template,
// consulting the archive so a remote id is fetched at most once per output
// directory. When transcodeMP3 is set the audio is extracted to MP3 at the
// highest quality; otherwise the container is remuxed to m4a without
// re-encoding. The final extension is chosen by the backend.
func (c *Client) Download(ctx context.Context, candidate *Candidate, outputTemplate string, archive *Archive, transcodeMP3 bool) error {
	if archive.Contains(candidate.ID) {
		slog.Info("already downloaded, skipping fetch", "id", candidate.ID, "title", candidate.Title)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	args := []string{
		"--no-playlist",
		"--no-warnings",
		"-f", bestAudioFormat,
		"-o", outputTemplate,
	}
	if transcodeMP3 {
		args = append(args, "-x", "--audio-format", "mp3", "--audio-quality", "0")
	} else {
		args = append(args, "--remux-video", "m4a")
	}
	args = append(args, candidate.WebpageURL)

	if _, err := c.runner.run(ctx, args...); err != nil {
		return fmt.Errorf("download failed for %s: %w", candidate.ID, err)
	}

	return archive.Add(candidate.ID)
}
