package applemusic

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/amkit/internal/shared"
)

// LibraryPlaylists lists every playlist in the user's library.
func (c *Client) LibraryPlaylists(ctx context.Context) ([]LibraryPlaylist, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segPlaylists)
	if err != nil {
		return nil, err
	}
	return FetchAll[LibraryPlaylist](ctx, c, desc)
}

// LibraryPlaylist fetches one library playlist.
func (c *Client) LibraryPlaylist(ctx context.Context, id string) (*LibraryPlaylist, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segPlaylists, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[LibraryPlaylist](ctx, c, desc)
}

// LibraryPlaylistSongs lists every track of a library playlist.
func (c *Client) LibraryPlaylistSongs(ctx context.Context, id string) ([]LibrarySong, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segPlaylists, id, segTracks)
	if err != nil {
		return nil, err
	}
	return FetchAll[LibrarySong](ctx, c, desc)
}

// CatalogPlaylist fetches a catalog playlist from the client's storefront.
func (c *Client) CatalogPlaylist(ctx context.Context, id string) (*Playlist, error) {
	desc, err := c.catalogRequest(nil, segPlaylists, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[Playlist](ctx, c, desc)
}

// CatalogPlaylistSongs lists every track of a catalog playlist.
func (c *Client) CatalogPlaylistSongs(ctx context.Context, id string) ([]Song, error) {
	desc, err := c.catalogRequest(nil, segPlaylists, id, segTracks)
	if err != nil {
		return nil, err
	}
	return FetchAll[Song](ctx, c, desc)
}

// CreateLibraryPlaylist creates a playlist in the user's library holding the given catalog and library songs.
func (c *Client) CreateLibraryPlaylist(ctx context.Context, name, description string, songs []Song, librarySongs []LibrarySong) (*LibraryPlaylist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	body := PlaylistRequest{
		Name:        name,
		Description: description,
		Tracks:      PlaylistTracks(songs, librarySongs),
	}

	desc, err := c.libraryRequest(http.MethodPost, nil, body, segPlaylists)
	if err != nil {
		return nil, err
	}
	return FetchOne[LibraryPlaylist](ctx, c, desc)
}

// AddTracksToLibraryPlaylist appends catalog and library songs to a library playlist.
func (c *Client) AddTracksToLibraryPlaylist(ctx context.Context, id string, songs []Song, librarySongs []LibrarySong) (bool, error) {
	tracks := PlaylistTracks(songs, librarySongs)
	if len(tracks) == 0 {
		return false, fmt.Errorf("%w: no tracks to add", shared.ErrMissingArgument)
	}

	desc, err := c.libraryRequest(http.MethodPost, nil, PlaylistRequest{Tracks: tracks}, segPlaylists, id, segTracks)
	if err != nil {
		return false, err
	}
	return c.dispatcher.Acknowledge(ctx, desc)
}
