// Package tag embeds track metadata and cover art into downloaded audio
// files, dispatching on the container format.
package tag

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	mp4tag "github.com/zhaarey/go-mp4tag"
)

// Metadata is the flat field mapping applied to a file's native tag format.
// Empty fields are skipped.
type Metadata struct {
	Title        string
	Artists      []string
	Album        string
	AlbumArtists []string
	ReleaseDate  string
	TrackNumber  int
	DiscNumber   int
	Genre        string
	Comment      string
}

// Write embeds the metadata into the file at path.
func Write(path string, meta Metadata) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return writeID3(path, meta)
	case ".m4a", ".mp4":
		return writeMP4(path, meta)
	}
	return fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
}

func writeID3(path string, meta Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open id3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if meta.Title != "" {
		tag.SetTitle(meta.Title)
	}
	if len(meta.Artists) > 0 {
		tag.SetArtist(strings.Join(meta.Artists, "/"))
	}
	if len(meta.AlbumArtists) > 0 {
		tag.AddTextFrame(
			tag.CommonID("Band/Orchestra/Accompaniment"),
			tag.DefaultEncoding(),
			strings.Join(meta.AlbumArtists, "/"),
		)
	}
	if meta.Album != "" {
		tag.SetAlbum(meta.Album)
	}
	if meta.TrackNumber > 0 {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), fmt.Sprint(meta.TrackNumber))
	}
	if meta.DiscNumber > 0 {
		tag.AddTextFrame(tag.CommonID("Part of a set"), tag.DefaultEncoding(), fmt.Sprint(meta.DiscNumber))
	}
	if year := releaseYear(meta.ReleaseDate); year != "" {
		tag.SetYear(year)
	}
	if meta.Genre != "" {
		tag.SetGenre(meta.Genre)
	}
	if meta.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "Comment",
			Text:        meta.Comment,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save id3 tag: %w", err)
	}
	return nil
}

func writeMP4(path string, meta Metadata) error {
	tags := &mp4tag.MP4Tags{
		Title:       meta.Title,
		Artist:      strings.Join(meta.Artists, "; "),
		Album:       meta.Album,
		AlbumArtist: strings.Join(meta.AlbumArtists, "; "),
		CustomGenre: meta.Genre,
	}
	if meta.TrackNumber > 0 {
		tags.TrackNumber = int16(meta.TrackNumber)
	}
	if meta.DiscNumber > 0 {
		tags.DiscNumber = int16(meta.DiscNumber)
	}
	if year := releaseYear(meta.ReleaseDate); year != "" {
		var y int32
		if _, err := fmt.Sscanf(year, "%d", &y); err == nil {
			tags.Year = y
		}
	}
	if meta.Comment != "" {
		tags.Comment = meta.Comment
	}

	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open mp4 container: %w", err)
	}
	defer mp4.Close()

	if err := mp4.Write(tags, []string{}); err != nil {
		return fmt.Errorf("failed to write mp4 tags: %w", err)
	}
	return nil
}

// releaseYear reduces a release date to its year, tolerating plain-year and
// full-date forms.
func releaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	year := releaseDate[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}
