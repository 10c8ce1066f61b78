// Package spotify provides a read-only client for the Spotify Web API,
// producing ordered tracklists from track, album and playlist URLs.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"

	// Spotify caps paginated reads at 50 items per request.
	pageLimit = 50
)

// Client is a read-only Spotify Web API client authenticated with the
// client-credentials flow. It also owns the artist genre cache, whose
// lifetime is therefore bounded by the client's (one batch run).
type Client struct {
	httpClient *http.Client
	baseURL    string
	genres     *genreCache
}

// New creates a client using the client-credentials grant.
func New(ctx context.Context, clientID, clientSecret string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify credentials not configured")
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &Client{
		httpClient: conf.Client(ctx),
		baseURL:    defaultBaseURL,
		genres:     newGenreCache(),
	}, nil
}

// newWithBaseURL builds an unauthenticated client against an arbitrary base
// URL. Used by tests.
func newWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		genres:     newGenreCache(),
	}
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify api request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify api returned status %d for %s", res.StatusCode, url)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode spotify response: %w", err)
	}

	return nil
}

// API response shapes, limited to the fields this client reads.

type apiArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

type apiImage struct {
	URL string `json:"url"`
}

type apiAlbum struct {
	Name        string      `json:"name"`
	Artists     []apiArtist `json:"artists"`
	ReleaseDate string      `json:"release_date"`
	Images      []apiImage  `json:"images"`
}

type apiTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []apiArtist       `json:"artists"`
	DurationMS   int               `json:"duration_ms"`
	TrackNumber  int               `json:"track_number"`
	DiscNumber   int               `json:"disc_number"`
	Album        apiAlbum          `json:"album"`
	ExternalURLs map[string]string `json:"external_urls"`
	IsLocal      bool              `json:"is_local"`
}

type albumTracksPage struct {
	Items []apiTrack `json:"items"`
	Next  string     `json:"next"`
}

type playlistItem struct {
	AddedAt string    `json:"added_at"`
	Track   *apiTrack `json:"track"`
}

type playlistItemsPage struct {
	Items []playlistItem `json:"items"`
	Next  string         `json:"next"`
}

type apiPlaylist struct {
	Name  string `json:"name"`
	Owner struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

func artistNames(artists []apiArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

func primaryArtistID(artists []apiArtist) string {
	for _, a := range artists {
		if a.ID != "" {
			return a.ID
		}
	}
	return ""
}

func coverURL(album apiAlbum) string {
	if len(album.Images) == 0 {
		return ""
	}
	return album.Images[0].URL
}
