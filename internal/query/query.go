// Package query turns a target track into an ordered list of candidate
// search queries, widest to narrowest disambiguation.
package query

import (
	"regexp"
	"strings"

	"github.com/jaki95/playlist-maker/internal/domain"
)

// baseLabels are the fixed disambiguation suffixes, in priority order.
var baseLabels = []string{"", "audio", "official audio"}

// instrumentalLabel is prepended when the title suggests an instrumental mix.
const instrumentalLabel = "instrumental"

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Variant is one candidate search query derived from a track plus a
// disambiguating suffix. Label is empty for the base variant and is reused as
// a filename suffix when the variant is the one that was accepted.
type Variant struct {
	Label string
	Query string
}

// Normalize strips punctuation from a display string, retaining word
// characters and whitespace only.
func Normalize(s string) string {
	return strings.TrimSpace(nonWord.ReplaceAllString(s, ""))
}

// Variants builds the ordered search variants for a track. The resolver tries
// them strictly in this order and stops at the first acceptance.
func Variants(track *domain.TargetTrack) []Variant {
	title := Normalize(track.Title)
	artist := Normalize(track.PrimaryArtist())

	labels := baseLabels
	if strings.Contains(strings.ToLower(title), instrumentalLabel) {
		labels = append([]string{instrumentalLabel}, baseLabels...)
	}

	variants := make([]Variant, 0, len(labels))
	for _, label := range labels {
		parts := []string{}
		if title != "" {
			parts = append(parts, title)
		}
		if artist != "" && !strings.EqualFold(artist, "unknown") {
			parts = append(parts, artist)
		}
		if label != "" {
			parts = append(parts, label)
		}
		variants = append(variants, Variant{Label: label, Query: strings.Join(parts, " ")})
	}

	return variants
}
