package youtube

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRunner struct {
	calls   [][]string
	handler func(args []string) ([]byte, error)
}

func (f *fakeRunner) run(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	if f.handler != nil {
		return f.handler(args)
	}
	return nil, nil
}

func newTestClient(handler func(args []string) ([]byte, error)) (*Client, *fakeRunner) {
	runner := &fakeRunner{handler: handler}
	client := NewClient(DefaultBinary)
	client.runner = runner
	return client, runner
}

func TestSearchParsesEntriesContainer(t *testing.T) {
	client, runner := newTestClient(func(args []string) ([]byte, error) {
		return []byte(`{
			"entries": [
				{"id": "abc123", "title": "One More Time (Official Audio)", "duration": 320, "webpage_url": "https://youtube.example/watch?v=abc123"},
				{"id": "zzz", "title": "second hit", "duration": 100, "webpage_url": "https://youtube.example/watch?v=zzz"}
			]
		}`), nil
	})

	candidate, err := client.Search(context.Background(), "One More Time Daft Punk")

	assert.NoError(t, err)
	assert.Equal(t, "abc123", candidate.ID)
	assert.Equal(t, "One More Time (Official Audio)", candidate.Title)
	assert.Equal(t, 320.0, candidate.Duration)
	assert.Equal(t, "https://youtube.example/watch?v=abc123", candidate.WebpageURL)

	assert.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "--skip-download")
	assert.Contains(t, runner.calls[0], "--no-playlist")
	assert.Contains(t, runner.calls[0], "ytsearch1:One More Time Daft Punk")
}

func TestSearchParsesBareResult(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return []byte(`{"id": "xyz", "title": "Aerodynamic", "webpage_url": "https://youtube.example/watch?v=xyz"}`), nil
	})

	candidate, err := client.Search(context.Background(), "Aerodynamic Daft Punk")

	assert.NoError(t, err)
	assert.Equal(t, "xyz", candidate.ID)
	assert.Equal(t, 0.0, candidate.Duration, "missing duration reported as zero")
}

func TestSearchEmptyEntries(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return []byte(`{"entries": []}`), nil
	})

	candidate, err := client.Search(context.Background(), "nothing at all")

	assert.ErrorIs(t, err, ErrNoResults)
	assert.Nil(t, candidate)
}

func TestSearchRunnerError(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return nil, fmt.Errorf("network unreachable")
	})

	candidate, err := client.Search(context.Background(), "whatever")

	assert.Error(t, err)
	assert.Nil(t, candidate)
}

func TestDownloadBuildsTranscodeArgs(t *testing.T) {
	client, runner := newTestClient(nil)
	archive, err := LoadArchive(filepath.Join(t.TempDir(), "downloaded.txt"))
	assert.NoError(t, err)

	candidate := &Candidate{ID: "abc123", WebpageURL: "https://youtube.example/watch?v=abc123"}
	err = client.Download(context.Background(), candidate, "/out/001 - Song.%(ext)s", archive, true)

	assert.NoError(t, err)
	assert.Len(t, runner.calls, 1)

	args := runner.calls[0]
	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "-x")
	assert.Contains(t, args, "mp3")
	assert.Contains(t, args, "/out/001 - Song.%(ext)s")
	assert.Equal(t, "https://youtube.example/watch?v=abc123", args[len(args)-1])
	assert.NotContains(t, args, "--remux-video")

	assert.True(t, archive.Contains("abc123"))
}

func TestDownloadBuildsRemuxArgs(t *testing.T) {
	client, runner := newTestClient(nil)
	archive, err := LoadArchive(filepath.Join(t.TempDir(), "downloaded.txt"))
	assert.NoError(t, err)

	candidate := &Candidate{ID: "abc123", WebpageURL: "https://youtube.example/watch?v=abc123"}
	err = client.Download(context.Background(), candidate, "/out/001 - Song.%(ext)s", archive, false)

	assert.NoError(t, err)
	args := runner.calls[0]
	assert.Contains(t, args, "--remux-video")
	assert.Contains(t, args, "m4a")
	assert.NotContains(t, args, "-x")
}

func TestDownloadSkipsArchivedID(t *testing.T) {
	client, runner := newTestClient(nil)
	archive, err := LoadArchive(filepath.Join(t.TempDir(), "downloaded.txt"))
	assert.NoError(t, err)

	candidate := &Candidate{ID: "abc123", WebpageURL: "https://youtube.example/watch?v=abc123"}

	assert.NoError(t, client.Download(context.Background(), candidate, "/out/x.%(ext)s", archive, true))
	assert.NoError(t, client.Download(context.Background(), candidate, "/out/x.%(ext)s", archive, true))

	assert.Len(t, runner.calls, 1, "second fetch of the same id must be skipped")
}

func TestDownloadFailureDoesNotRecordID(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return nil, fmt.Errorf("403 forbidden")
	})
	archive, err := LoadArchive(filepath.Join(t.TempDir(), "downloaded.txt"))
	assert.NoError(t, err)

	candidate := &Candidate{ID: "abc123", WebpageURL: "https://youtube.example/watch?v=abc123"}
	err = client.Download(context.Background(), candidate, "/out/x.%(ext)s", archive, true)

	assert.Error(t, err)
	assert.False(t, archive.Contains("abc123"))
}
