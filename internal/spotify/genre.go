package spotify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
)

// genreCache memoises artist genre lookups for the lifetime of one client.
// Failed lookups are cached as empty so an unavailable artist is fetched at
// most once per batch.
type genreCache struct {
	mu       sync.Mutex
	byArtist map[string][]string
}

func newGenreCache() *genreCache {
	return &genreCache{byArtist: make(map[string][]string)}
}

func (g *genreCache) get(artistID string) ([]string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	genres, ok := g.byArtist[artistID]
	return genres, ok
}

func (g *genreCache) put(artistID string, genres []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byArtist[artistID] = genres
}

// primaryGenre resolves the first genre of an artist, consulting the cache
// before the API. Lookup failures degrade to an empty genre.
func (c *Client) primaryGenre(ctx context.Context, artistID string) string {
	if artistID == "" {
		return ""
	}

	if genres, ok := c.genres.get(artistID); ok {
		return firstOrEmpty(genres)
	}

	var artist apiArtist
	if err := c.get(ctx, fmt.Sprintf("%s/artists/%s", c.baseURL, artistID), &artist); err != nil {
		slog.Warn("artist genre lookup failed", "artist", artistID, "error", err)
		c.genres.put(artistID, nil)
		return ""
	}

	genres := make([]string, 0, len(artist.Genres))
	for _, genre := range artist.Genres {
		genres = append(genres, capitalize(genre))
	}
	c.genres.put(artistID, genres)

	return firstOrEmpty(genres)
}

func firstOrEmpty(genres []string) string {
	if len(genres) == 0 {
		return ""
	}
	return genres[0]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
