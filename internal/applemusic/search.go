package applemusic

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/amkit/internal/shared"
)

// SearchCatalog searches the storefront's catalog. With no types the server picks the kinds.
//
// Search is a single request: result envelopes keep their own next references.
func (c *Client) SearchCatalog(ctx context.Context, term string, types ...SearchType) (*SearchResults, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term", shared.ErrMissingArgument)
	}

	desc, err := c.catalogRequest(searchQuery(term, types), segSearch)
	if err != nil {
		return nil, err
	}

	resp, err := Dispatch[searchResponse[SearchResults]](ctx, c.dispatcher, desc)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// SearchCatalogSongs returns the first page of catalog songs matching term.
func (c *Client) SearchCatalogSongs(ctx context.Context, term string) ([]Song, error) {
	res, err := c.SearchCatalog(ctx, term, SearchSongs)
	if err != nil {
		return nil, err
	}
	return items(res.Songs), nil
}

// SearchCatalogAlbums returns the first page of catalog albums matching term.
func (c *Client) SearchCatalogAlbums(ctx context.Context, term string) ([]Album, error) {
	res, err := c.SearchCatalog(ctx, term, SearchAlbums)
	if err != nil {
		return nil, err
	}
	return items(res.Albums), nil
}

// SearchCatalogArtists returns the first page of catalog artists matching term.
func (c *Client) SearchCatalogArtists(ctx context.Context, term string) ([]Artist, error) {
	res, err := c.SearchCatalog(ctx, term, SearchArtists)
	if err != nil {
		return nil, err
	}
	return items(res.Artists), nil
}

// SearchCatalogPlaylists returns the first page of catalog playlists matching term.
func (c *Client) SearchCatalogPlaylists(ctx context.Context, term string) ([]Playlist, error) {
	res, err := c.SearchCatalog(ctx, term, SearchPlaylists)
	if err != nil {
		return nil, err
	}
	return items(res.Playlists), nil
}

// SearchLibrary searches the user's library.
func (c *Client) SearchLibrary(ctx context.Context, term string, types ...SearchType) (*LibrarySearchResults, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term", shared.ErrMissingArgument)
	}

	desc, err := c.libraryRequest(http.MethodGet, searchQuery(term, types), nil, segSearch)
	if err != nil {
		return nil, err
	}

	resp, err := Dispatch[searchResponse[LibrarySearchResults]](ctx, c.dispatcher, desc)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// SearchLibrarySongs returns the first page of library songs matching term.
func (c *Client) SearchLibrarySongs(ctx context.Context, term string) ([]LibrarySong, error) {
	res, err := c.SearchLibrary(ctx, term, SearchLibrarySongs)
	if err != nil {
		return nil, err
	}
	return items(res.Songs), nil
}

// SearchLibraryAlbums returns the first page of library albums matching term.
func (c *Client) SearchLibraryAlbums(ctx context.Context, term string) ([]LibraryAlbum, error) {
	res, err := c.SearchLibrary(ctx, term, SearchLibraryAlbums)
	if err != nil {
		return nil, err
	}
	return items(res.Albums), nil
}

// SearchLibraryArtists returns the first page of library artists matching term.
func (c *Client) SearchLibraryArtists(ctx context.Context, term string) ([]LibraryArtist, error) {
	res, err := c.SearchLibrary(ctx, term, SearchLibraryArtists)
	if err != nil {
		return nil, err
	}
	return items(res.Artists), nil
}

// SearchLibraryPlaylists returns the first page of library playlists matching term.
func (c *Client) SearchLibraryPlaylists(ctx context.Context, term string) ([]LibraryPlaylist, error) {
	res, err := c.SearchLibrary(ctx, term, SearchLibraryPlaylists)
	if err != nil {
		return nil, err
	}
	return items(res.Playlists), nil
}
