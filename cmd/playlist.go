package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/models"
	"github.com/desertthunder/amkit/internal/shared"
	"github.com/desertthunder/amkit/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistSongs lists the songs of a library playlist, or a catalog playlist with --catalog.
func (r *Runner) PlaylistSongs(ctx context.Context, cmd *cli.Command) error {
	id, err := firstArg(cmd, "playlist ID")
	if err != nil {
		return err
	}

	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("catalog") {
		songs, err := c.CatalogPlaylistSongs(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch tracks of %s: %w", id, err)
		}
		songs = limited(songs, cmd.Int("limit"))
		return r.emit(cmd, songs, func() error {
			return r.writeSongs(fmt.Sprintf("Tracks of %s (%d)", id, len(songs)), songs)
		})
	}

	songs, err := c.LibraryPlaylistSongs(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch tracks of %s: %w", id, err)
	}
	songs = limited(songs, cmd.Int("limit"))
	return r.emit(cmd, songs, func() error {
		return r.writeLibrarySongs(fmt.Sprintf("Tracks of %s (%d)", id, len(songs)), songs)
	})
}

// PlaylistExport exports each playlist argument in parallel and reports per playlist outcomes.
//
// Arguments may be playlist IDs or names. A failed playlist does not stop the others;
// the command fails only when every export failed.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one playlist ID", shared.ErrMissingArgument)
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}
	svc.ResolveISRCs = cmd.Bool("isrc")
	svc.Concurrency = cmd.Int("concurrency")

	engine := r.engine(svc, nil)
	ids := make([]string, len(args))
	for i, arg := range args {
		if ids[i], err = engine.ResolvePlaylistID(ctx, arg); err != nil {
			return err
		}
	}

	var result *tasks.BulkExportResult
	err = r.track(func(progress chan<- tasks.ProgressUpdate) error {
		var err error
		result, err = engine.BulkExport(ctx, progress, ids, tasks.BulkExportOpts{
			Format:     cmd.String("format"),
			OutputDir:  cmd.String("output"),
			NumWorkers: cmd.Int("concurrency"),
			RateLimit:  r.config.Client.RateLimit,
		})
		return err
	})
	if err != nil {
		return err
	}

	for _, res := range result.Results {
		if res.Err != nil {
			if err := r.writePlainln("%s", r.palette.Fail("%s: %v", res.PlaylistID, res.Err)); err != nil {
				return err
			}
			continue
		}
		if err := r.writePlainln("%s", r.palette.OK("%s (%d files)", res.PlaylistName, len(res.Files))); err != nil {
			return err
		}
	}
	if err := r.writePlainln("%s", r.palette.Row("manifest", result.ManifestPath)); err != nil {
		return err
	}

	if result.Succeeded() == 0 {
		return fmt.Errorf("%w: no playlists exported", shared.ErrAPIRequest)
	}
	return nil
}

// PlaylistDiff compares two library playlists by ISRC and normalized title/artist.
func (r *Runner) PlaylistDiff(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("%w: source and destination playlist", shared.ErrMissingArgument)
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}
	svc.ResolveISRCs = cmd.Bool("isrc")
	engine := r.engine(svc, nil)

	var ids [2]string
	for i := range ids {
		if ids[i], err = engine.ResolvePlaylistID(ctx, cmd.Args().Get(i)); err != nil {
			return err
		}
	}

	var result *tasks.ComparisonResult
	err = r.track(func(progress chan<- tasks.ProgressUpdate) error {
		var err error
		result, err = engine.Diff(ctx, ids[0], ids[1], progress)
		return err
	})
	if err != nil {
		return err
	}

	summary := map[string]any{
		"source":          result.SourcePlaylist.Playlist,
		"destination":     result.DestPlaylist.Playlist,
		"matched":         result.MatchedCount,
		"missing_in_dest": result.MissingInDest,
		"extra_in_dest":   result.ExtraInDest,
	}
	return r.emit(cmd, summary, func() error {
		if err := r.writeHeader(fmt.Sprintf("%s → %s", result.SourcePlaylist.Playlist.Name, result.DestPlaylist.Playlist.Name)); err != nil {
			return err
		}
		if err := r.writePlainln("%s", r.palette.Row("matched", fmt.Sprintf("%d/%d", result.MatchedCount, len(result.SourcePlaylist.Tracks)))); err != nil {
			return err
		}
		for _, t := range result.MissingInDest {
			if err := r.writePlainln("%s", r.palette.Fail("%s - %s", t.Title, t.Artist)); err != nil {
				return err
			}
		}
		for _, t := range result.ExtraInDest {
			if err := r.writePlainln("%s", r.palette.Warn("%s - %s", t.Title, t.Artist)); err != nil {
				return err
			}
		}
		return nil
	})
}

// PlaylistImport recreates a JSON export as a library playlist, matching tracks by ISRC then by search.
func (r *Runner) PlaylistImport(ctx context.Context, cmd *cli.Command) error {
	path, err := firstArg(cmd, "export file")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	var export models.PlaylistExport
	if err := json.Unmarshal(data, &export); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if name := cmd.String("name"); name != "" {
		export.Playlist.Name = name
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	created, err := svc.ImportPlaylist(ctx, &export)
	if err != nil {
		return err
	}

	return r.emit(cmd, created, func() error {
		return r.writePlainln("%s", r.palette.OK("Created %s (%s) with %d of %d tracks",
			created.Name, created.ID, created.TrackCount, len(export.Tracks)))
	})
}

// PlaylistCreate creates a library playlist from catalog and library song IDs.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	songs, librarySongs := songRefs(cmd)
	created, err := c.CreateLibraryPlaylist(ctx, cmd.String("name"), cmd.String("description"), songs, librarySongs)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return r.emit(cmd, created, func() error {
		return r.writePlainln("%s", r.palette.OK("Created playlist %s", created.ID))
	})
}

// PlaylistAdd appends songs to a library playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := firstArg(cmd, "playlist ID")
	if err != nil {
		return err
	}

	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	songs, librarySongs := songRefs(cmd)
	ok, err := c.AddTracksToLibraryPlaylist(ctx, id, songs, librarySongs)
	if err != nil {
		if errors.Is(err, shared.ErrMissingArgument) {
			return fmt.Errorf("%w: pass --song or --library-song", err)
		}
		return err
	}
	if !ok {
		return r.writePlainln("%s", r.palette.Warn("Request was not acknowledged"))
	}
	return r.writePlainln("%s", r.palette.OK("Added %d tracks to %s", len(songs)+len(librarySongs), id))
}

func songRefs(cmd *cli.Command) ([]applemusic.Song, []applemusic.LibrarySong) {
	var songs []applemusic.Song
	for _, id := range cmd.StringSlice("song") {
		songs = append(songs, applemusic.Song{ID: id, Type: applemusic.TypeSongs})
	}

	var librarySongs []applemusic.LibrarySong
	for _, id := range cmd.StringSlice("library-song") {
		librarySongs = append(librarySongs, applemusic.LibrarySong{ID: id, Type: applemusic.TypeLibrarySongs})
	}
	return songs, librarySongs
}
