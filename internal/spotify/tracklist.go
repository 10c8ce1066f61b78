package spotify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jaki95/playlist-maker/internal/domain"
)

// Tracklist fetches the ordered track records behind a Spotify URL. A track
// URL yields a one-element list; albums and playlists are paginated through
// in full.
func (c *Client) Tracklist(ctx context.Context, rawURL string, mode SortMode) (*domain.Tracklist, error) {
	contentType, id, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	switch contentType {
	case ContentTypeTrack:
		return c.trackTracklist(ctx, id)
	case ContentTypeAlbum:
		return c.albumTracklist(ctx, id)
	case ContentTypePlaylist:
		return c.playlistTracklist(ctx, id, mode == SortKeep)
	}

	return nil, fmt.Errorf("unsupported spotify content type: %s", contentType)
}

func (c *Client) trackTracklist(ctx context.Context, trackID string) (*domain.Tracklist, error) {
	var track apiTrack
	if err := c.get(ctx, fmt.Sprintf("%s/tracks/%s", c.baseURL, trackID), &track); err != nil {
		return nil, fmt.Errorf("failed to fetch track %s: %w", trackID, err)
	}

	target := c.toTargetTrack(ctx, track, track.Album, 1)
	target.TrackNumber = track.TrackNumber
	target.DiscNumber = track.DiscNumber

	return &domain.Tracklist{
		Name:        track.Name,
		Artists:     artistNames(track.Artists),
		ReleaseDate: track.Album.ReleaseDate,
		Tracks:      []*domain.TargetTrack{target},
	}, nil
}

func (c *Client) albumTracklist(ctx context.Context, albumID string) (*domain.Tracklist, error) {
	var album apiAlbum
	if err := c.get(ctx, fmt.Sprintf("%s/albums/%s", c.baseURL, albumID), &album); err != nil {
		return nil, fmt.Errorf("failed to fetch album %s: %w", albumID, err)
	}

	list := &domain.Tracklist{
		Name:        album.Name,
		Artists:     artistNames(album.Artists),
		ReleaseDate: album.ReleaseDate,
	}

	next := fmt.Sprintf("%s/albums/%s/tracks?limit=%d", c.baseURL, albumID, pageLimit)
	for next != "" {
		var page albumTracksPage
		if err := c.get(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch album tracks: %w", err)
		}

		for _, track := range page.Items {
			// Simplified album track objects carry no album of their own.
			target := c.toTargetTrack(ctx, track, album, len(list.Tracks)+1)
			target.TrackNumber = track.TrackNumber
			target.DiscNumber = track.DiscNumber
			list.Tracks = append(list.Tracks, target)
		}

		next = page.Next
	}

	slog.Debug("fetched album", "album", album.Name, "tracks", len(list.Tracks))
	return list, nil
}

func (c *Client) playlistTracklist(ctx context.Context, playlistID string, keepOrder bool) (*domain.Tracklist, error) {
	var playlist apiPlaylist
	if err := c.get(ctx, fmt.Sprintf("%s/playlists/%s", c.baseURL, playlistID), &playlist); err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}

	owner := playlist.Owner.DisplayName
	if owner == "" {
		owner = playlist.Owner.ID
	}

	list := &domain.Tracklist{
		Name:    playlist.Name,
		Artists: []string{owner},
	}

	var latestAddedAt string

	next := fmt.Sprintf("%s/playlists/%s/tracks?limit=%d", c.baseURL, playlistID, pageLimit)
	for next != "" {
		var page playlistItemsPage
		if err := c.get(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
		}

		for _, item := range page.Items {
			// Local and unavailable entries carry no usable track record.
			if item.Track == nil || item.Track.IsLocal {
				continue
			}

			track := *item.Track
			if item.AddedAt > latestAddedAt {
				latestAddedAt = item.AddedAt
			}

			album := track.Album
			// Group the playlist as one album so devices present it as a
			// single collection.
			album.Name = playlist.Name

			target := c.toTargetTrack(ctx, track, album, len(list.Tracks)+1)
			if keepOrder {
				target.TrackNumber = len(list.Tracks) + 1
				target.DiscNumber = 1
			} else {
				target.TrackNumber = track.TrackNumber
				target.DiscNumber = track.DiscNumber
			}
			list.Tracks = append(list.Tracks, target)
		}

		next = page.Next
	}

	// The playlist "release date" is the date its newest track was added.
	if len(latestAddedAt) >= 10 {
		list.ReleaseDate = latestAddedAt[:10]
	}

	slog.Debug("fetched playlist", "playlist", playlist.Name, "tracks", len(list.Tracks))
	return list, nil
}

func (c *Client) toTargetTrack(ctx context.Context, track apiTrack, album apiAlbum, index int) *domain.TargetTrack {
	return &domain.TargetTrack{
		Title:        track.Name,
		Artists:      artistNames(track.Artists),
		Genre:        c.primaryGenre(ctx, primaryArtistID(track.Artists)),
		Album:        album.Name,
		AlbumArtists: artistNames(album.Artists),
		ReleaseDate:  album.ReleaseDate,
		DurationMS:   track.DurationMS,
		Index:        index,
		SpotifyID:    track.ID,
		SpotifyURL:   track.ExternalURLs["spotify"],
		CoverURL:     coverURL(album),
	}
}
