package spotify

import (
	"fmt"
	"regexp"
	"strings"
)

// ContentType identifies what kind of catalog entity a URL points at.
type ContentType string

const (
	ContentTypeTrack    ContentType = "track"
	ContentTypeAlbum    ContentType = "album"
	ContentTypePlaylist ContentType = "playlist"
)

// SortMode controls how playlist tracks are numbered.
type SortMode string

const (
	// SortKeep preserves the playlist ordering and renumbers tracks 1..n.
	SortKeep SortMode = "keep"
	// SortAlbum keeps each track's original disc and track numbers.
	SortAlbum SortMode = "album"
)

var urlPattern = regexp.MustCompile(`(?i)open\.spotify\.com/(track|playlist|album)/([a-zA-Z0-9]+)`)

// ParseURL extracts the content type and id from an open.spotify.com URL.
func ParseURL(rawURL string) (ContentType, string, error) {
	m := urlPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", fmt.Errorf("invalid spotify URL: %s", rawURL)
	}

	switch ContentType(strings.ToLower(m[1])) {
	case ContentTypeTrack:
		return ContentTypeTrack, m[2], nil
	case ContentTypeAlbum:
		return ContentTypeAlbum, m[2], nil
	case ContentTypePlaylist:
		return ContentTypePlaylist, m[2], nil
	}

	return "", "", fmt.Errorf("unsupported spotify content type: %s", m[1])
}
