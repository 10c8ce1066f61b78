package domain

import "strings"

// TargetTrack is a single track requested from the catalog. It is immutable
// once produced by the catalog fetch; the batch processor owns it for the
// duration of one run.
type TargetTrack struct {
	Title        string   `json:"title"`
	Artists      []string `json:"artists"`
	Genre        string   `json:"genre,omitempty"`
	Album        string   `json:"album"`
	AlbumArtists []string `json:"album_artists,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	DurationMS   int      `json:"duration_ms"`
	DiscNumber   int      `json:"disc_number,omitempty"`
	TrackNumber  int      `json:"track_number,omitempty"`

	// Index is the 1-based position of the track in the requested ordering.
	Index int `json:"index"`

	SpotifyID  string `json:"spotify_id,omitempty"`
	SpotifyURL string `json:"spotify_url,omitempty"`
	CoverURL   string `json:"cover_url,omitempty"`
}

// PrimaryArtist returns the first listed artist, or an empty string.
func (t *TargetTrack) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return strings.TrimSpace(t.Artists[0])
}

// DurationSeconds returns the track duration in seconds, or 0 when unknown.
func (t *TargetTrack) DurationSeconds() float64 {
	if t.DurationMS <= 0 {
		return 0
	}
	return float64(t.DurationMS) / 1000
}

// Tracklist is an ordered collection of target tracks: a playlist, an album,
// or a single track wrapped in a one-element list.
type Tracklist struct {
	Name        string         `json:"name"`
	Artists     []string       `json:"artists"`
	ReleaseDate string         `json:"release_date,omitempty"`
	Tracks      []*TargetTrack `json:"tracks"`
}
