package applemusic

import (
	"context"
	"net/http"
)

// LibraryArtists lists every artist in the user's library.
func (c *Client) LibraryArtists(ctx context.Context) ([]LibraryArtist, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segArtists)
	if err != nil {
		return nil, err
	}
	return FetchAll[LibraryArtist](ctx, c, desc)
}

// LibraryArtist returns one library artist by id.
func (c *Client) LibraryArtist(ctx context.Context, id string) (*LibraryArtist, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segArtists, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[LibraryArtist](ctx, c, desc)
}

// CatalogArtist returns one catalog artist by id in the client's storefront.
func (c *Client) CatalogArtist(ctx context.Context, id string) (*Artist, error) {
	desc, err := c.catalogRequest(nil, segArtists, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[Artist](ctx, c, desc)
}
