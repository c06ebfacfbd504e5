package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/shared"
	"github.com/urfave/cli/v3"
)

var searchKinds = map[string][2]applemusic.SearchType{
	"songs":     {applemusic.SearchSongs, applemusic.SearchLibrarySongs},
	"albums":    {applemusic.SearchAlbums, applemusic.SearchLibraryAlbums},
	"artists":   {applemusic.SearchArtists, applemusic.SearchLibraryArtists},
	"playlists": {applemusic.SearchPlaylists, applemusic.SearchLibraryPlaylists},
}

// searchTypes maps --type values to catalog (library=false) or library search types.
func searchTypes(names []string, library bool) ([]applemusic.SearchType, error) {
	types := make([]applemusic.SearchType, 0, len(names))
	for _, name := range names {
		kinds, ok := searchKinds[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown search type %q", shared.ErrInvalidArgument, name)
		}
		if library {
			types = append(types, kinds[1])
		} else {
			types = append(types, kinds[0])
		}
	}
	return types, nil
}

type searchRow struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
	By   string `json:"by,omitempty"`
}

// SearchCatalog searches the catalog of the current storefront.
func (r *Runner) SearchCatalog(ctx context.Context, cmd *cli.Command) error {
	term, err := firstArg(cmd, "search term")
	if err != nil {
		return err
	}
	types, err := searchTypes(cmd.StringSlice("type"), false)
	if err != nil {
		return err
	}

	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	res, err := c.SearchCatalog(ctx, term, types...)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	var rows []searchRow
	if res.Songs != nil {
		for _, s := range limited(res.Songs.Data, limit) {
			row := searchRow{Kind: "song", ID: s.ID}
			if a := s.Attributes; a != nil {
				row.Name, row.By = a.Name, a.ArtistName
			}
			rows = append(rows, row)
		}
	}
	if res.Albums != nil {
		for _, al := range limited(res.Albums.Data, limit) {
			row := searchRow{Kind: "album", ID: al.ID}
			if a := al.Attributes; a != nil {
				row.Name, row.By = a.Name, a.ArtistName
			}
			rows = append(rows, row)
		}
	}
	if res.Artists != nil {
		for _, ar := range limited(res.Artists.Data, limit) {
			row := searchRow{Kind: "artist", ID: ar.ID}
			if a := ar.Attributes; a != nil {
				row.Name = a.Name
			}
			rows = append(rows, row)
		}
	}
	if res.Playlists != nil {
		for _, p := range limited(res.Playlists.Data, limit) {
			row := searchRow{Kind: "playlist", ID: p.ID}
			if a := p.Attributes; a != nil {
				row.Name, row.By = a.Name, a.CuratorName
			}
			rows = append(rows, row)
		}
	}

	return r.writeSearch(cmd, term, rows)
}

// SearchLibrary searches the user's library.
func (r *Runner) SearchLibrary(ctx context.Context, cmd *cli.Command) error {
	term, err := firstArg(cmd, "search term")
	if err != nil {
		return err
	}
	types, err := searchTypes(cmd.StringSlice("type"), true)
	if err != nil {
		return err
	}

	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	res, err := c.SearchLibrary(ctx, term, types...)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	var rows []searchRow
	if res.Songs != nil {
		for _, s := range limited(res.Songs.Data, limit) {
			row := searchRow{Kind: "song", ID: s.ID}
			if a := s.Attributes; a != nil {
				row.Name, row.By = a.Name, a.ArtistName
			}
			rows = append(rows, row)
		}
	}
	if res.Albums != nil {
		for _, al := range limited(res.Albums.Data, limit) {
			row := searchRow{Kind: "album", ID: al.ID}
			if a := al.Attributes; a != nil {
				row.Name, row.By = a.Name, a.ArtistName
			}
			rows = append(rows, row)
		}
	}
	if res.Artists != nil {
		for _, ar := range limited(res.Artists.Data, limit) {
			row := searchRow{Kind: "artist", ID: ar.ID}
			if a := ar.Attributes; a != nil {
				row.Name = a.Name
			}
			rows = append(rows, row)
		}
	}
	if res.Playlists != nil {
		for _, p := range limited(res.Playlists.Data, limit) {
			row := searchRow{Kind: "playlist", ID: p.ID}
			if a := p.Attributes; a != nil {
				row.Name = a.Name
			}
			rows = append(rows, row)
		}
	}

	return r.writeSearch(cmd, term, rows)
}

// SearchTrack finds the best catalog match for a title and artist.
func (r *Runner) SearchTrack(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	track, err := svc.SearchTrack(ctx, cmd.String("title"), cmd.String("artist"))
	if err != nil {
		return err
	}

	return r.emit(cmd, track, func() error {
		return r.writePlainln("%s  %s - %s %s", track.ID, track.Title, track.Artist,
			r.palette.Help(shared.FormatDuration(track.Duration)))
	})
}

func (r *Runner) writeSearch(cmd *cli.Command, term string, rows []searchRow) error {
	return r.emit(cmd, rows, func() error {
		if err := r.writeHeader(fmt.Sprintf("Results for %q (%d)", term, len(rows))); err != nil {
			return err
		}
		for _, row := range rows {
			line := fmt.Sprintf("%-8s %s  %s", row.Kind, row.ID, row.Name)
			if row.By != "" {
				line += r.palette.Help(" - " + row.By)
			}
			if err := r.writePlainln("%s", line); err != nil {
				return err
			}
		}
		return nil
	})
}
