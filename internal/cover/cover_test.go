package cover

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 255), G: uint8(y % 255), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeBoundsLargeImage(t *testing.T) {
	raw := testPNG(t, 1200, 800)

	out, err := Normalize(raw, DefaultMaxDimension, DefaultQuality)
	assert.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
	bounds := img.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), DefaultMaxDimension)
	assert.LessOrEqual(t, bounds.Dy(), DefaultMaxDimension)

	// Aspect ratio is preserved: 1200x800 scales to 500x333.
	assert.Equal(t, 500, bounds.Dx())
	assert.Equal(t, 333, bounds.Dy())
}

func TestNormalizeKeepsSmallImage(t *testing.T) {
	raw := testPNG(t, 300, 300)

	out, err := Normalize(raw, DefaultMaxDimension, DefaultQuality)
	assert.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	out, err := Normalize([]byte("not an image"), DefaultMaxDimension, DefaultQuality)
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestFetcherJPEG(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(testPNG(t, 600, 600))
	}))
	defer server.Close()

	fetcher := NewFetcher()
	out, err := fetcher.JPEG(context.Background(), server.URL+"/cover.png")

	assert.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())
}

func TestFetcherJPEGHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	fetcher := NewFetcher()
	out, err := fetcher.JPEG(context.Background(), server.URL+"/cover.png")

	assert.Error(t, err)
	assert.Nil(t, out)
}
