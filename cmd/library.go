package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/shared"
	"github.com/desertthunder/amkit/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes a configuration file at the --config path.
//
// Without credential flags the commented example file is written as is.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("force") {
		if err := os.Remove(r.configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	creds := shared.CredentialsConfig{
		DeveloperToken: cmd.String("developer-token"),
		UserToken:      cmd.String("user-token"),
		Storefront:     cmd.String("storefront"),
	}
	if creds == (shared.CredentialsConfig{}) {
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return err
		}
		return r.writePlainln("%s", r.palette.OK("Wrote %s", r.configPath))
	}

	if _, err := os.Stat(r.configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", r.configPath)
	}

	config := shared.DefaultConfig()
	config.Credentials = creds
	if err := shared.SaveConfig(r.configPath, config); err != nil {
		return err
	}
	return r.writePlainln("%s", r.palette.OK("Wrote %s with credentials", r.configPath))
}

// ConfigShow prints the effective configuration with tokens masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	config.Credentials.DeveloperToken = mask(config.Credentials.DeveloperToken)
	config.Credentials.UserToken = mask(config.Credentials.UserToken)

	return r.emit(cmd, config, func() error {
		rows := [][2]string{
			{"config", r.configPath},
			{"developer", config.Credentials.DeveloperToken},
			{"user", config.Credentials.UserToken},
			{"storefront", config.Credentials.Storefront},
			{"base url", config.Client.BaseURL},
			{"timeout", config.Client.Timeout.String()},
			{"max retries", fmt.Sprintf("%d", config.Client.MaxRetries)},
			{"rate limit", fmt.Sprintf("%g/s", config.Client.RateLimit)},
			{"log level", config.Log.Level},
		}
		if err := r.writeHeader("Configuration"); err != nil {
			return err
		}
		for _, row := range rows {
			if err := r.writePlainln("%s", r.palette.Row(row[0], row[1])); err != nil {
				return err
			}
		}
		return nil
	})
}

func mask(token string) string {
	switch {
	case token == "":
		return ""
	case len(token) <= 8:
		return strings.Repeat("*", len(token))
	default:
		return token[:4] + strings.Repeat("*", 8)
	}
}

// Storefront prints the storefront catalog requests use and, with a user token, the account's storefronts.
func (r *Runner) Storefront(ctx context.Context, cmd *cli.Command) error {
	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	current, err := c.Storefront()
	if err != nil {
		return err
	}

	var storefronts []applemusic.Storefront
	if c.HasUserAccess() {
		if storefronts, err = c.UserStorefronts(ctx); err != nil {
			return err
		}
	}

	return r.emit(cmd, map[string]any{"storefront": current, "user_storefronts": storefronts}, func() error {
		if err := r.writePlainln("%s", r.palette.Row("storefront", current)); err != nil {
			return err
		}
		for _, sf := range storefronts {
			name := ""
			if sf.Attributes != nil {
				name = sf.Attributes.Name
			}
			if err := r.writePlainln("%s", r.palette.Row(sf.ID, name)); err != nil {
				return err
			}
		}
		return nil
	})
}

// LibraryPlaylists lists every playlist in the user's library.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("fetching library playlists")
	playlists, err := c.LibraryPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}
	playlists = limited(playlists, cmd.Int("limit"))

	return r.emit(cmd, playlists, func() error {
		if err := r.writeHeader(fmt.Sprintf("Playlists (%d)", len(playlists))); err != nil {
			return err
		}
		for _, p := range playlists {
			name, visibility := "", ""
			if a := p.Attributes; a != nil {
				name, visibility = a.Name, shared.VisibilityString(a.IsPublic)
			}
			if err := r.writePlainln("%s  %s  %s", p.ID, name, r.palette.Help(visibility)); err != nil {
				return err
			}
		}
		return nil
	})
}

// LibrarySongs lists every song in the user's library.
func (r *Runner) LibrarySongs(ctx context.Context, cmd *cli.Command) error {
	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	songs, err := c.LibrarySongs(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch songs: %w", err)
	}
	songs = limited(songs, cmd.Int("limit"))

	return r.emit(cmd, songs, func() error {
		return r.writeLibrarySongs(fmt.Sprintf("Songs (%d)", len(songs)), songs)
	})
}

// LibraryAlbums lists every album in the user's library.
func (r *Runner) LibraryAlbums(ctx context.Context, cmd *cli.Command) error {
	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	albums, err := c.LibraryAlbums(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch albums: %w", err)
	}
	albums = limited(albums, cmd.Int("limit"))

	return r.emit(cmd, albums, func() error {
		if err := r.writeHeader(fmt.Sprintf("Albums (%d)", len(albums))); err != nil {
			return err
		}
		for _, a := range albums {
			name, artist := "", ""
			if a.Attributes != nil {
				name, artist = a.Attributes.Name, a.Attributes.ArtistName
			}
			if err := r.writePlainln("%s  %s - %s", a.ID, name, artist); err != nil {
				return err
			}
		}
		return nil
	})
}

// LibraryArtists lists every artist in the user's library.
func (r *Runner) LibraryArtists(ctx context.Context, cmd *cli.Command) error {
	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	artists, err := c.LibraryArtists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch artists: %w", err)
	}
	artists = limited(artists, cmd.Int("limit"))

	return r.emit(cmd, artists, func() error {
		if err := r.writeHeader(fmt.Sprintf("Artists (%d)", len(artists))); err != nil {
			return err
		}
		for _, a := range artists {
			name := ""
			if a.Attributes != nil {
				name = a.Attributes.Name
			}
			if err := r.writePlainln("%s  %s", a.ID, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// LibraryDump writes the first page of each library endpoint as a single JSON document.
func (r *Runner) LibraryDump(ctx context.Context, cmd *cli.Command) error {
	api, err := r.api(ctx)
	if err != nil {
		return err
	}

	var result *tasks.DumpResult
	err = r.track(func(progress chan<- tasks.ProgressUpdate) error {
		var err error
		result, err = r.engine(nil, api).Dump(ctx, progress)
		return err
	})
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		r.logger.Warn("endpoint failed", "endpoint", e.Endpoint, "err", e.Error)
	}

	path := cmd.String("output")
	if path == "" {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	data, err := shared.MarshalJSON(result, cmd.Bool("pretty"))
	if err != nil {
		return fmt.Errorf("failed to marshal dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return r.writePlainln("%s", r.palette.OK("Wrote %s", path))
}

// AddToLibrary adds catalog songs, albums and playlists to the user's library.
func (r *Runner) AddToLibrary(ctx context.Context, cmd *cli.Command) error {
	c, err := r.appleClient(ctx)
	if err != nil {
		return err
	}

	ok, err := c.AddToLibrary(ctx, cmd.StringSlice("song"), cmd.StringSlice("album"), cmd.StringSlice("playlist"))
	if err != nil {
		return err
	}
	if !ok {
		return r.writePlainln("%s", r.palette.Warn("Request was not acknowledged"))
	}
	return r.writePlainln("%s", r.palette.OK("Added to library"))
}

func (r *Runner) writeLibrarySongs(title string, songs []applemusic.LibrarySong) error {
	if err := r.writeHeader(title); err != nil {
		return err
	}
	for i, s := range songs {
		if s.Attributes == nil {
			if err := r.writePlainln("%3d. %s", i+1, s.ID); err != nil {
				return err
			}
			continue
		}
		a := s.Attributes
		if err := r.writePlainln("%3d. %s - %s %s", i+1, a.Name, a.ArtistName,
			r.palette.Help(shared.FormatDuration(a.DurationInMillis/1000))); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) writeSongs(title string, songs []applemusic.Song) error {
	if err := r.writeHeader(title); err != nil {
		return err
	}
	for i, s := range songs {
		if s.Attributes == nil {
			if err := r.writePlainln("%3d. %s", i+1, s.ID); err != nil {
				return err
			}
			continue
		}
		a := s.Attributes
		if err := r.writePlainln("%3d. %s - %s %s", i+1, a.Name, a.ArtistName,
			r.palette.Help(shared.FormatDuration(a.DurationInMillis/1000))); err != nil {
			return err
		}
	}
	return nil
}
