package applemusic

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/amkit/internal/shared"
)

// AddToLibrary adds catalog songs, albums and playlists, by id, to the user's library.
func (c *Client) AddToLibrary(ctx context.Context, songIDs, albumIDs, playlistIDs []string) (bool, error) {
	query := libraryIDsQuery(songIDs, albumIDs, playlistIDs)
	if len(query) == 0 {
		return false, fmt.Errorf("%w: no ids to add", shared.ErrMissingArgument)
	}

	u, err := c.auth.URL(query, segVersion, segMe, segLibrary)
	if err != nil {
		return false, err
	}

	desc, err := c.auth.Authenticate(u, http.MethodPost, nil, true)
	if err != nil {
		return false, err
	}
	return c.dispatcher.Acknowledge(ctx, desc)
}

// AddSongsToLibrary adds catalog songs to the user's library.
func (c *Client) AddSongsToLibrary(ctx context.Context, ids ...string) (bool, error) {
	return c.AddToLibrary(ctx, ids, nil, nil)
}

// AddAlbumsToLibrary adds catalog albums to the user's library.
func (c *Client) AddAlbumsToLibrary(ctx context.Context, ids ...string) (bool, error) {
	return c.AddToLibrary(ctx, nil, ids, nil)
}

// AddPlaylistsToLibrary adds catalog playlists to the user's library.
func (c *Client) AddPlaylistsToLibrary(ctx context.Context, ids ...string) (bool, error) {
	return c.AddToLibrary(ctx, nil, nil, ids)
}

// IDs collects the ids of any resources, e.g. to pass search results to [Client.AddToLibrary].
func IDs[A, R any](resources []Resource[A, R]) []string {
	ids := make([]string, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	return ids
}
