// Package batch orchestrates one full download run: it sequences query
// building, resolution, fetching, artifact discovery and tagging per track,
// and aggregates the outcomes into a final report.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/jaki95/playlist-maker/internal/domain"
	"github.com/jaki95/playlist-maker/internal/query"
	"github.com/jaki95/playlist-maker/internal/sanitize"
	"github.com/jaki95/playlist-maker/internal/tag"
	"github.com/jaki95/playlist-maker/internal/tracklist"
	"github.com/jaki95/playlist-maker/internal/youtube"
)

// ArchiveFileName is the download ledger kept inside each batch directory.
const ArchiveFileName = "downloaded.txt"

// ErrMissingExecutable is returned when a required external tool is absent
// from the execution path. The batch fails before any track is attempted.
var ErrMissingExecutable = fmt.Errorf("missing required executable")

// Resolver finds an acceptable remote candidate for a track.
type Resolver interface {
	Resolve(ctx context.Context, track *domain.TargetTrack, variants []query.Variant) (*youtube.Candidate, query.Variant, error)
}

// Fetcher downloads an accepted candidate to the output template.
type Fetcher interface {
	Download(ctx context.Context, candidate *youtube.Candidate, outputTemplate string, archive *youtube.Archive, transcodeMP3 bool) error
}

// Tagger applies metadata and cover art to a local audio file.
type Tagger interface {
	Write(path string, meta tag.Metadata) error
	EmbedCover(path string, jpeg []byte) error
}

// CoverProvider fetches cover art as embeddable JPEG bytes.
type CoverProvider interface {
	JPEG(ctx context.Context, url string) ([]byte, error)
}

// Options configure one batch run.
type Options struct {
	// OutputRoot is the directory the per-tracklist output directory is
	// created under.
	OutputRoot string

	// Numbered prefixes filenames with the zero-padded track index.
	Numbered bool

	// TranscodeMP3 extracts MP3 audio; when false the download is remuxed
	// to m4a without re-encoding.
	TranscodeMP3 bool

	// External executables required before any track is attempted.
	FFmpegBinary string
	YTDLPBinary  string
}

// Processor runs batches. Tracks are processed strictly one at a time:
// serial access to the download ledger is what keeps the fetch-once
// invariant without locking across processes.
type Processor struct {
	resolver Resolver
	fetcher  Fetcher
	tagger   Tagger
	covers   CoverProvider

	lookPath func(string) (string, error)
}

// New creates a batch processor.
func New(resolver Resolver, fetcher Fetcher, tagger Tagger, covers CoverProvider) *Processor {
	return &Processor{
		resolver: resolver,
		fetcher:  fetcher,
		tagger:   tagger,
		covers:   covers,
		lookPath: exec.LookPath,
	}
}

// Run processes every track of the list in input order and returns the
// aggregated report. Exactly one result exists per input track. Errors
// never escape the batch boundary once track processing has begun: an
// unexpected failure ends the run with whatever partial report has
// accumulated.
func (p *Processor) Run(ctx context.Context, list *domain.Tracklist, opts Options) (report *domain.BatchReport, err error) {
	if opts.FFmpegBinary == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if opts.YTDLPBinary == "" {
		opts.YTDLPBinary = youtube.DefaultBinary
	}

	if err := p.preflight(opts); err != nil {
		return nil, err
	}

	dirName := sanitize.Name(list.Name, sanitize.DefaultMaxLength)
	outputDir := filepath.Join(opts.OutputRoot, dirName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	archive, err := youtube.LoadArchive(filepath.Join(outputDir, ArchiveFileName))
	if err != nil {
		return nil, err
	}

	report = &domain.BatchReport{}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("unexpected error during batch, ending with partial report", "panic", r)
			err = nil
		}
	}()

	total := len(list.Tracks)
	slog.Info("starting batch",
		"run", uuid.NewString(),
		"tracklist", list.Name,
		"tracks", total,
		"output", outputDir,
	)

	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: ".",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Downloading tracks...[reset]"),
	)
	eta := newETATracker(total)

	for _, track := range list.Tracks {
		report.Add(p.processTrack(ctx, track, outputDir, archive, opts))
		bar.Add(1)
		slog.Info("progress",
			"processed", eta.processed+1,
			"total", total,
			"eta", eta.Advance().Round(timeRounding).String(),
		)
	}

	if len(report.NotFound) > 0 {
		manifestPath := filepath.Join(outputDir, dirName+"_not_found.csv")
		if err := tracklist.WriteNotFound(manifestPath, report.NotFound); err != nil {
			slog.Error("failed to write not-found manifest", "path", manifestPath, "error", err)
		} else {
			slog.Info("wrote not-found manifest", "path", manifestPath)
		}
	}

	slog.Info("batch completed",
		"downloaded", len(report.Downloaded),
		"not_found", len(report.NotFound),
		"output", outputDir,
	)

	return report, nil
}

func (p *Processor) preflight(opts Options) error {
	var missing []string
	for _, binary := range []string{opts.FFmpegBinary, opts.YTDLPBinary} {
		if _, err := p.lookPath(binary); err != nil {
			missing = append(missing, binary)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingExecutable, strings.Join(missing, ", "))
	}
	return nil
}

func (p *Processor) processTrack(ctx context.Context, track *domain.TargetTrack, outputDir string, archive *youtube.Archive, opts Options) domain.DownloadResult {
	result := domain.DownloadResult{
		Index:  track.Index,
		Title:  track.Title,
		Artist: track.PrimaryArtist(),
		Album:  track.Album,
	}

	candidate, variant, err := p.resolver.Resolve(ctx, track, query.Variants(track))
	if err != nil {
		slog.Info("no acceptable source", "track", track.Index, "title", track.Title)
		result.Reason = "no valid download"
		return result
	}

	base := baseFileName(track, variant.Label, opts.Numbered)
	template := filepath.Join(outputDir, base+".%(ext)s")

	// A download failure after acceptance is final for this track; the
	// remaining search variants are not retried.
	if err := p.fetcher.Download(ctx, candidate, template, archive, opts.TranscodeMP3); err != nil {
		slog.Error("download failed", "track", track.Index, "title", track.Title, "error", err)
		result.Reason = "download failed"
		return result
	}

	path, ok := youtube.LocateArtifact(outputDir, base)
	if !ok {
		slog.Error("downloaded file not found", "track", track.Index, "prefix", base)
		result.Reason = "downloaded file not found"
		return result
	}

	if err := p.tagger.Write(path, metadataFor(track, candidate)); err != nil {
		slog.Error("tagging failed", "track", track.Index, "path", path, "error", err)
		result.Reason = "tagging failed"
		return result
	}

	// Cover art is best effort: a missing cover never fails the track.
	if track.CoverURL != "" {
		if jpegBytes, err := p.covers.JPEG(ctx, track.CoverURL); err != nil {
			slog.Warn("failed to fetch cover art", "track", track.Index, "error", err)
		} else if err := p.tagger.EmbedCover(path, jpegBytes); err != nil {
			slog.Warn("failed to embed cover art", "track", track.Index, "error", err)
		}
	}

	slog.Info("downloaded", "track", track.Index, "title", candidate.Title, "path", path)
	result.Accepted = true
	result.Path = path
	return result
}

// baseFileName computes the artifact filename stem for a track. The accepted
// variant's label is appended so repeats under different variants do not
// collide.
func baseFileName(track *domain.TargetTrack, variantLabel string, numbered bool) string {
	title := query.Normalize(track.Title)
	if title == "" {
		title = fmt.Sprintf("Track_%d", track.Index)
	}

	base := title
	if numbered {
		base = fmt.Sprintf("%03d - %s", track.Index, title)
	}
	if variantLabel != "" {
		base += " - " + variantLabel
	}
	return base
}

func metadataFor(track *domain.TargetTrack, candidate *youtube.Candidate) tag.Metadata {
	return tag.Metadata{
		Title:        track.Title,
		Artists:      track.Artists,
		Album:        track.Album,
		AlbumArtists: track.AlbumArtists,
		ReleaseDate:  track.ReleaseDate,
		TrackNumber:  track.TrackNumber,
		DiscNumber:   track.DiscNumber,
		Genre:        track.Genre,
		Comment:      candidate.WebpageURL,
	}
}
