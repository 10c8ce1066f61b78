// Package cover fetches remote cover art and normalizes it to a
// modestly-sized JPEG that embeds cleanly in both ID3 and MP4 tags.
package cover

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	// Register decoders for the formats album art is served in.
	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	// DefaultMaxDimension bounds both cover edges. Kept small for older
	// portable players.
	DefaultMaxDimension = 500

	// DefaultQuality is the JPEG encode quality.
	DefaultQuality = 85

	fetchTimeout = 20 * time.Second
)

// Fetcher downloads and normalizes cover art.
type Fetcher struct {
	httpClient   *http.Client
	maxDimension uint
	quality      int
}

// NewFetcher creates a fetcher with the default bounds.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient:   &http.Client{Timeout: fetchTimeout},
		maxDimension: DefaultMaxDimension,
		quality:      DefaultQuality,
	}
}

// JPEG downloads the image at url and returns it as a bounded JPEG.
func (f *Fetcher) JPEG(ctx context.Context, url string) ([]byte, error) {
	raw, err := f.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Normalize(raw, f.maxDimension, f.quality)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover art: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cover art download returned status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cover art: %w", err)
	}
	return data, nil
}

// Normalize decodes any supported image and re-encodes it as a JPEG whose
// longest edge does not exceed maxDimension, preserving aspect ratio.
func Normalize(raw []byte, maxDimension uint, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover art: %w", err)
	}

	img = resize.Thumbnail(maxDimension, maxDimension, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode cover art: %w", err)
	}
	return buf.Bytes(), nil
}
