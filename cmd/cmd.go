package main

import (
	"fmt"

	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/shared"
	"github.com/urfave/cli/v3"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output results as JSON"},
		&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
	}
}

func limitFlag() cli.Flag {
	return &cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Limit number of rows printed (0 for all)"}
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a configuration file, optionally filled with credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "developer-token", Usage: "Developer token (JWT) to store"},
					&cli.StringFlag{Name: "user-token", Usage: "Music user token to store"},
					&cli.StringFlag{Name: "storefront", Usage: "Storefront code to store"},
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration with secrets masked",
				Flags:  outputFlags(),
				Action: r.ConfigShow,
			},
		},
	}
}

func storefrontCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "storefront",
		Usage:  "Show the storefront catalog requests are sent to",
		Flags:  outputFlags(),
		Action: r.Storefront,
	}
}

func libraryCommand(r *Runner) *cli.Command {
	flags := append(outputFlags(), limitFlag())
	return &cli.Command{
		Name:  "library",
		Usage: "Browse the user's library",
		Commands: []*cli.Command{
			{Name: "playlists", Usage: "List library playlists", Flags: flags, Action: r.LibraryPlaylists},
			{Name: "songs", Usage: "List library songs", Flags: flags, Action: r.LibrarySongs},
			{Name: "albums", Usage: "List library albums", Flags: flags, Action: r.LibraryAlbums},
			{Name: "artists", Usage: "List library artists", Flags: flags, Action: r.LibraryArtists},
			{
				Name:  "dump",
				Usage: "Fetch the first page of every library endpoint as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to a file instead of stdout"},
					&cli.BoolFlag{Name: "pretty", Value: true, Usage: "Pretty-print JSON output"},
				},
				Action: r.LibraryDump,
			},
		},
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Inspect, export and edit playlists",
		Commands: []*cli.Command{
			{
				Name:      "songs",
				Usage:     "List the songs of a playlist",
				ArgsUsage: "<playlist-id>",
				Flags: append(outputFlags(),
					&cli.BoolFlag{Name: "catalog", Usage: "Treat the ID as a catalog playlist"},
					limitFlag(),
				),
				Action: r.PlaylistSongs,
			},
			{
				Name:      "export",
				Usage:     "Export library playlists to files and write a manifest",
				ArgsUsage: "<playlist-id-or-name>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "csv", Usage: "Export format (csv, markdown, json, text)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: ".", Usage: "Output directory"},
					&cli.BoolFlag{Name: "isrc", Usage: "Resolve ISRCs through catalog search"},
					&cli.IntFlag{Name: "concurrency", Value: applemusic.DefaultISRCConcurrency, Usage: "Parallel requests for exports and ISRC lookups"},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:      "diff",
				Usage:     "Compare two library playlists",
				ArgsUsage: "<source> <destination>",
				Flags: append(outputFlags(),
					&cli.BoolFlag{Name: "isrc", Usage: "Resolve ISRCs through catalog search before comparing"},
				),
				Action: r.PlaylistDiff,
			},
			{
				Name:      "import",
				Usage:     "Recreate a JSON export as a library playlist",
				ArgsUsage: "<export.json>",
				Flags: append(outputFlags(),
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Override the playlist name"},
				),
				Action: r.PlaylistImport,
			},
			{
				Name:  "create",
				Usage: "Create a library playlist",
				Flags: append(outputFlags(),
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Playlist name"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Playlist description"},
					&cli.StringSliceFlag{Name: "song", Usage: "Catalog song ID to include (repeatable)"},
					&cli.StringSliceFlag{Name: "library-song", Usage: "Library song ID to include (repeatable)"},
				),
				Action: r.PlaylistCreate,
			},
			{
				Name:      "add",
				Usage:     "Append songs to a library playlist",
				ArgsUsage: "<playlist-id>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "song", Usage: "Catalog song ID to append (repeatable)"},
					&cli.StringSliceFlag{Name: "library-song", Usage: "Library song ID to append (repeatable)"},
				},
				Action: r.PlaylistAdd,
			},
		},
	}
}

func catalogCommand(r *Runner) *cli.Command {
	flags := outputFlags()
	return &cli.Command{
		Name:  "catalog",
		Usage: "Look up catalog resources in the current storefront",
		Commands: []*cli.Command{
			{Name: "song", ArgsUsage: "<id>", Usage: "Show a catalog song", Flags: flags, Action: r.CatalogSong},
			{Name: "album", ArgsUsage: "<id>", Usage: "Show a catalog album", Flags: flags, Action: r.CatalogAlbum},
			{Name: "artist", ArgsUsage: "<id>", Usage: "Show a catalog artist", Flags: flags, Action: r.CatalogArtist},
			{Name: "playlist", ArgsUsage: "<id>", Usage: "Show a catalog playlist", Flags: flags, Action: r.CatalogPlaylist},
			{Name: "isrc", ArgsUsage: "<isrc>", Usage: "Find the catalog song with an ISRC", Flags: flags, Action: r.CatalogISRC},
		},
	}
}

func searchCommand(r *Runner) *cli.Command {
	flags := append(outputFlags(),
		&cli.StringSliceFlag{Name: "type", Aliases: []string{"t"}, Usage: "Restrict to resource types (songs, albums, artists, playlists)"},
		limitFlag(),
	)
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog or the user's library",
		Commands: []*cli.Command{
			{Name: "catalog", ArgsUsage: "<term>", Usage: "Search the catalog", Flags: flags, Action: r.SearchCatalog},
			{Name: "library", ArgsUsage: "<term>", Usage: "Search the user's library", Flags: flags, Action: r.SearchLibrary},
			{
				Name:  "track",
				Usage: "Find the best catalog match for a title and artist",
				Flags: append(outputFlags(),
					&cli.StringFlag{Name: "title", Required: true, Usage: "Track title"},
					&cli.StringFlag{Name: "artist", Usage: "Artist name"},
				),
				Action: r.SearchTrack,
			},
		},
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add catalog resources to the user's library",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "song", Usage: "Catalog song ID (repeatable)"},
			&cli.StringSliceFlag{Name: "album", Usage: "Catalog album ID (repeatable)"},
			&cli.StringSliceFlag{Name: "playlist", Usage: "Catalog playlist ID (repeatable)"},
		},
		Action: r.AddToLibrary,
	}
}

func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Send raw requests to the Apple Music API",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "GET a path such as /v1/me/library/playlists",
				ArgsUsage: "<path>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "pretty", Value: true, Usage: "Pretty-print JSON output"}},
				Action:    r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "POST to a path with an optional JSON body",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON request body"},
					&cli.BoolFlag{Name: "pretty", Value: true, Usage: "Pretty-print JSON output"},
				},
				Action: r.APIPost,
			},
		},
	}
}

// firstArg returns the first positional argument or a missing argument error naming it.
func firstArg(cmd *cli.Command, name string) (string, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return arg, nil
}

func limited[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}

// emit writes v as JSON when --json is set and calls plain otherwise.
func (r *Runner) emit(cmd *cli.Command, v any, plain func() error) error {
	if cmd.Bool("json") {
		return r.writeJSON(v, cmd.Bool("pretty"))
	}
	return plain()
}
