package applemusic

import (
	"context"
	"net/http"
)

// LibraryAlbums lists every album in the user's library.
func (c *Client) LibraryAlbums(ctx context.Context) ([]LibraryAlbum, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segAlbums)
	if err != nil {
		return nil, err
	}
	return FetchAll[LibraryAlbum](ctx, c, desc)
}

// LibraryAlbum fetches one library album.
func (c *Client) LibraryAlbum(ctx context.Context, id string) (*LibraryAlbum, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segAlbums, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[LibraryAlbum](ctx, c, desc)
}

// CatalogAlbum fetches a catalog album. Its tracks relationship is returned as
// embedded; use [FollowRelationship] to load the remaining pages.
func (c *Client) CatalogAlbum(ctx context.Context, id string) (*Album, error) {
	desc, err := c.catalogRequest(nil, segAlbums, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[Album](ctx, c, desc)
}
