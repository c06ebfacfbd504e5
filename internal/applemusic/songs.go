package applemusic

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/amkit/internal/shared"
	"golang.org/x/sync/errgroup"
)

// DefaultISRCConcurrency bounds the lookups [Client.ResolveISRCs] runs at once.
const DefaultISRCConcurrency = 4

// LibrarySongs lists every song in the user's library.
func (c *Client) LibrarySongs(ctx context.Context) ([]LibrarySong, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segSongs)
	if err != nil {
		return nil, err
	}
	return FetchAll[LibrarySong](ctx, c, desc)
}

// LibrarySong returns one library song by id.
func (c *Client) LibrarySong(ctx context.Context, id string) (*LibrarySong, error) {
	desc, err := c.libraryRequest(http.MethodGet, nil, nil, segSongs, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[LibrarySong](ctx, c, desc)
}

// CatalogSong returns one catalog song by id in the client's storefront.
func (c *Client) CatalogSong(ctx context.Context, id string) (*Song, error) {
	desc, err := c.catalogRequest(nil, segSongs, id)
	if err != nil {
		return nil, err
	}
	return FetchOne[Song](ctx, c, desc)
}

// CatalogSongByISRC returns the first catalog song recorded under isrc.
func (c *Client) CatalogSongByISRC(ctx context.Context, isrc string) (*Song, error) {
	if isrc == "" {
		return nil, fmt.Errorf("%w: isrc", shared.ErrMissingArgument)
	}

	desc, err := c.catalogRequest(isrcQuery(isrc), segSongs)
	if err != nil {
		return nil, err
	}

	song, err := FetchOne[Song](ctx, c, desc)
	if errors.Is(err, shared.ErrResourceNotFound) {
		return nil, fmt.Errorf("%w: isrc %s", shared.ErrTrackNotFound, isrc)
	}
	return song, err
}

// LibrarySongISRC finds the ISRC of a library song by searching the catalog for its name and artist.
//
// Library songs do not carry an ISRC themselves. [shared.ErrTrackNotFound] is
// returned when the search has no songs.
func (c *Client) LibrarySongISRC(ctx context.Context, song LibrarySong) (string, error) {
	if song.Attributes == nil {
		return "", fmt.Errorf("%w: library song %s has no attributes", shared.ErrInvalidInput, song.ID)
	}

	term := song.Attributes.Name + " " + song.Attributes.ArtistName
	songs, err := c.SearchCatalogSongs(ctx, term)
	if err != nil {
		return "", err
	}

	if len(songs) == 0 || songs[0].Attributes == nil || songs[0].Attributes.ISRC == "" {
		return "", fmt.Errorf("%w: %q", shared.ErrTrackNotFound, term)
	}
	return songs[0].Attributes.ISRC, nil
}

// ResolveISRCs looks up the ISRC of each library song, at most concurrency at a time.
//
// The result is index aligned with songs. Songs without attributes or without a
// catalog match get an empty string; any other failure aborts the batch.
func (c *Client) ResolveISRCs(ctx context.Context, songs []LibrarySong, concurrency int) ([]string, error) {
	if concurrency <= 0 {
		concurrency = DefaultISRCConcurrency
	}

	isrcs := make([]string, len(songs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, song := range songs {
		if song.Attributes == nil {
			continue
		}

		g.Go(func() error {
			isrc, err := c.LibrarySongISRC(ctx, song)
			switch {
			case errors.Is(err, shared.ErrTrackNotFound):
				c.logger.Debug("no catalog match", "song", song.ID)
				return nil
			case err != nil:
				return fmt.Errorf("failed to resolve isrc for %s: %w", song.ID, err)
			}
			isrcs[i] = isrc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return isrcs, nil
}
