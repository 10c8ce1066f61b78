package tracklist

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jaki95/playlist-maker/internal/domain"
)

var notFoundHeader = []string{"Track Name", "Artist Name(s)", "Album Name", "Track Number", "Error"}

// WriteNotFound serializes the failed subset of a batch as a manifest for
// follow-up by hand.
func WriteNotFound(path string, results []domain.DownloadResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create not-found manifest: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(notFoundHeader); err != nil {
		return fmt.Errorf("failed to write manifest header: %w", err)
	}

	for _, res := range results {
		record := []string{
			res.Title,
			res.Artist,
			res.Album,
			strconv.Itoa(res.Index),
			res.Reason,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write manifest record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
