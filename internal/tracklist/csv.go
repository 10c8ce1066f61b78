// Package tracklist reads and writes the CSV intermediate format that sits
// between the catalog fetch and the download pipeline, plus the not-found
// manifest left behind for failed tracks.
package tracklist

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jaki95/playlist-maker/internal/domain"
	"github.com/jaki95/playlist-maker/internal/spotify"
)

// Column order matches the playlist-export convention used by common Spotify
// exporters, so third-party exports can be fed straight into Read.
var header = []string{
	"Track Name",
	"Artist Name(s)",
	"Genre",
	"Album Name",
	"Album Artist(s)",
	"Tracklist Name",
	"Tracklist Artist(s)",
	"Release Date",
	"Duration (ms)",
	"Disc Number",
	"Track Number",
	"Spotify Track ID",
	"Spotify Track URL",
	"Cover URL",
}

const artistSeparator = "; "

// Write serializes a tracklist to CSV. In album mode tracks are ordered by
// (disc, track) number; keep mode preserves the incoming order.
func Write(path string, list *domain.Tracklist, mode spotify.SortMode) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	tracks := list.Tracks
	if mode == spotify.SortAlbum {
		tracks = make([]*domain.TargetTrack, len(list.Tracks))
		copy(tracks, list.Tracks)
		sort.SliceStable(tracks, func(i, j int) bool {
			if tracks[i].DiscNumber != tracks[j].DiscNumber {
				return tracks[i].DiscNumber < tracks[j].DiscNumber
			}
			return tracks[i].TrackNumber < tracks[j].TrackNumber
		})
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	listArtists := strings.Join(list.Artists, artistSeparator)
	for _, t := range tracks {
		albumArtists := t.AlbumArtists
		if len(albumArtists) == 0 {
			albumArtists = list.Artists
		}

		releaseDate := t.ReleaseDate
		if releaseDate == "" {
			releaseDate = list.ReleaseDate
		}

		record := []string{
			t.Title,
			strings.Join(t.Artists, artistSeparator),
			t.Genre,
			albumNameOrUnknown(t.Album),
			strings.Join(albumArtists, artistSeparator),
			list.Name,
			listArtists,
			releaseDate,
			strconv.Itoa(t.DurationMS),
			numberOrEmpty(t.DiscNumber),
			numberOrEmpty(t.TrackNumber),
			t.SpotifyID,
			t.SpotifyURL,
			t.CoverURL,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Read parses a tracklist CSV back into ordered target tracks. Columns are
// matched by header name so field order and extra columns are tolerated.
func Read(path string) (*domain.Tracklist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no tracks found in CSV file")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	list := &domain.Tracklist{}
	for _, record := range records[1:] {
		if list.Name == "" {
			list.Name = field(record, "Tracklist Name")
			list.Artists = splitArtists(field(record, "Tracklist Artist(s)"))
		}

		durationMS, _ := strconv.Atoi(field(record, "Duration (ms)"))
		discNumber, _ := strconv.Atoi(field(record, "Disc Number"))
		trackNumber, _ := strconv.Atoi(field(record, "Track Number"))

		list.Tracks = append(list.Tracks, &domain.TargetTrack{
			Title:        field(record, "Track Name"),
			Artists:      splitArtists(field(record, "Artist Name(s)")),
			Genre:        field(record, "Genre"),
			Album:        field(record, "Album Name"),
			AlbumArtists: splitArtists(field(record, "Album Artist(s)")),
			ReleaseDate:  field(record, "Release Date"),
			DurationMS:   durationMS,
			DiscNumber:   discNumber,
			TrackNumber:  trackNumber,
			Index:        len(list.Tracks) + 1,
			SpotifyID:    field(record, "Spotify Track ID"),
			SpotifyURL:   field(record, "Spotify Track URL"),
			CoverURL:     field(record, "Cover URL"),
		})
	}

	if len(list.Tracks) == 0 {
		return nil, fmt.Errorf("no tracks found in CSV file")
	}

	return list, nil
}

func splitArtists(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	artists := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			artists = append(artists, trimmed)
		}
	}
	return artists
}

func albumNameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

func numberOrEmpty(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
