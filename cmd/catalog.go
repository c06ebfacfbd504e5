package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/shared"
	"github.com/urfave/cli/v3"
)

// CatalogSong shows a catalog song.
func (r *Runner) CatalogSong(ctx context.Context, cmd *cli.Command) error {
	return catalogLookup(ctx, r, cmd, (*applemusic.Client).CatalogSong, songRow)
}

// CatalogISRC shows the catalog song carrying an ISRC.
func (r *Runner) CatalogISRC(ctx context.Context, cmd *cli.Command) error {
	return catalogLookup(ctx, r, cmd, (*applemusic.Client).CatalogSongByISRC, songRow)
}

// CatalogAlbum shows a catalog album.
func (r *Runner) CatalogAlbum(ctx context.Context, cmd *cli.Command) error {
	return catalogLookup(ctx, r, cmd, (*applemusic.Client).CatalogAlbum, func(a applemusic.Album) [][2]string {
		if a.Attributes == nil {
			return nil
		}
		return [][2]string{
			{"name", a.Attributes.Name},
			{"artist", a.Attributes.ArtistName},
			{"tracks", fmt.Sprintf("%d", a.Attributes.TrackCount)},
			{"released", a.Attributes.ReleaseDate},
			{"label", a.Attributes.RecordLabel},
		}
	})
}

// CatalogArtist shows a catalog artist.
func (r *Runner) CatalogArtist(ctx context.Context, cmd *cli.Command) error {
	return catalogLookup(ctx, r, cmd, (*applemusic.Client).CatalogArtist, func(a applemusic.Artist) [][2]string {
		if a.Attributes == nil {
			return nil
		}
		return [][2]string{
			{"name", a.Attributes.Name},
			{"genres", strings.Join(a.Attributes.GenreNames, ", ")},
			{"url", a.Attributes.URL},
		}
	})
}

// CatalogPlaylist shows a catalog playlist.
func (r *Runner) CatalogPlaylist(ctx context.Context, cmd *cli.Command) error {
	return catalogLookup(ctx, r, cmd, (*applemusic.Client).CatalogPlaylist, func(p applemusic.Playlist) [][2]string {
		if p.Attributes == nil {
			return nil
		}
		return [][2]string{
			{"name", p.Attributes.Name},
			{"curator", p.Attributes.CuratorName},
			{"description", p.Attributes.Description.Text()},
		}
	})
}

func songRow(s applemusic.Song) [][2]string {
	if s.Attributes == nil {
		return nil
	}
	a := s.Attributes
	return [][2]string{
		{"name", a.Name},
		{"artist", a.ArtistName},
		{"album", a.AlbumName},
		{"duration", shared.FormatDuration(a.DurationInMillis / 1000)},
		{"isrc", a.ISRC},
	}
}

// catalogLookup fetches the resource named by the first argument and prints it as rows or JSON.
func catalogLookup[T any](ctx context.Context, r *Runner, cmd *cli.Command, fetch func(*applemusic.Client, context.Context, string) (*T, error), rows func(T) [][2]string) error {
	arg, err := firstArg(cmd, cmd.ArgsUsage)
	if err != nil {
		return err
	}

	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	v, err := fetch(c, ctx, arg)
	if err != nil {
		return err
	}

	return r.emit(cmd, v, func() error {
		if err := r.writeHeader(arg); err != nil {
			return err
		}
		for _, row := range rows(*v) {
			if row[1] == "" {
				continue
			}
			if err := r.writePlainln("%s", r.palette.Row(row[0], row[1])); err != nil {
				return err
			}
		}
		return nil
	})
}
