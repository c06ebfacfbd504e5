package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amkit/internal/formatter"
	"github.com/desertthunder/amkit/internal/models"
	"github.com/desertthunder/amkit/internal/services"
	"github.com/desertthunder/amkit/internal/shared"
)

// ComparisonResult contains track comparison details between two playlists.
type ComparisonResult struct {
	SourcePlaylist *models.PlaylistExport // Source playlist
	DestPlaylist   *models.PlaylistExport // Destination playlist
	MatchedCount   int                    // Source tracks found in dest
	MissingInDest  []models.Track         // Tracks in source but not in dest
	ExtraInDest    []models.Track         // Tracks in dest but not in source
}

// EndpointResult represents the result of fetching data from a single API endpoint.
type EndpointResult struct {
	Endpoint string
	Error    error
}

// DumpResult holds the decoded first page of each library endpoint.
type DumpResult struct {
	Storefront any              `json:"storefront,omitempty"`
	Playlists  any              `json:"playlists,omitempty"`
	Songs      any              `json:"songs,omitempty"`
	Albums     any              `json:"albums,omitempty"`
	Artists    any              `json:"artists,omitempty"`
	Recent     any              `json:"recent,omitempty"`
	Errors     []EndpointResult `json:"-"`
}

type endpointOperation struct {
	name   string
	path   string
	target *any
	phase  Phase
}

// APIClient sends raw GET requests. [services.APIService] satisfies it.
type APIClient interface {
	Get(ctx context.Context, path string) (*services.APIResponse, error)
}

// Engine runs playlist operations against a music service.
type Engine struct {
	svc    services.Service
	api    APIClient
	writer *formatter.Writer
	logger *log.Logger
}

// NewEngine creates an Engine. api may be nil when [Engine.Dump] is not used.
func NewEngine(svc services.Service, api APIClient, writer *formatter.Writer, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if writer == nil {
		writer = &formatter.Writer{Logger: logger}
	}
	return &Engine{svc: svc, api: api, writer: writer, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ResolvePlaylistID returns idOrName when it names a playlist ID, otherwise the ID of the first playlist with that name.
func (e *Engine) ResolvePlaylistID(ctx context.Context, idOrName string) (string, error) {
	if e.svc == nil {
		return "", fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	playlists, err := e.svc.GetPlaylists(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get playlists: %w", err)
	}

	for _, pl := range playlists {
		if pl.ID == idOrName {
			return pl.ID, nil
		}
	}
	for _, pl := range playlists {
		if pl.Name == idOrName {
			return pl.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no playlist with ID or name %q", shared.ErrPlaylistNotFound, idOrName)
}

// Diff compares two playlists and identifies differences.
func (e *Engine) Diff(ctx context.Context, sourceID, destID string, progress chan<- ProgressUpdate) (*ComparisonResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchSourceUpdate(1, 2, sourceID))
	source, err := e.svc.ExportPlaylist(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to export source playlist: %w", err)
	}

	e.sendProgress(progress, fetchDestUpdate(2, 2, destID))
	dest, err := e.svc.ExportPlaylist(ctx, destID)
	if err != nil {
		return nil, fmt.Errorf("failed to export destination playlist: %w", err)
	}

	e.sendProgress(progress, compareUpdate(source, dest))
	return Compare(source, dest), nil
}

// Compare matches the tracks of two exports by ISRC, falling back to normalized title and artist.
func Compare(source, dest *models.PlaylistExport) *ComparisonResult {
	result := &ComparisonResult{SourcePlaylist: source, DestPlaylist: dest}

	inDest := newTrackIndex(dest.Tracks)
	for _, track := range source.Tracks {
		if inDest.contains(track) {
			result.MatchedCount++
		} else {
			result.MissingInDest = append(result.MissingInDest, track)
		}
	}

	inSource := newTrackIndex(source.Tracks)
	for _, track := range dest.Tracks {
		if !inSource.contains(track) {
			result.ExtraInDest = append(result.ExtraInDest, track)
		}
	}
	return result
}

type trackIndex struct {
	isrcs map[string]struct{}
	keys  map[string]struct{}
}

func newTrackIndex(tracks []models.Track) trackIndex {
	idx := trackIndex{isrcs: map[string]struct{}{}, keys: map[string]struct{}{}}
	for _, t := range tracks {
		idx.keys[shared.NormalizeTrackKey(t.Title, t.Artist)] = struct{}{}
		if t.ISRC != "" {
			idx.isrcs[t.ISRC] = struct{}{}
		}
	}
	return idx
}

func (idx trackIndex) contains(t models.Track) bool {
	if t.ISRC != "" {
		if _, ok := idx.isrcs[t.ISRC]; ok {
			return true
		}
	}
	_, ok := idx.keys[shared.NormalizeTrackKey(t.Title, t.Artist)]
	return ok
}

// Dump fetches the first page of each library endpoint through the raw API client.
//
// Endpoint failures are collected in [DumpResult.Errors]. Only cancellation aborts the dump.
func (e *Engine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{Errors: []EndpointResult{}}
	endpoints := []endpointOperation{
		{name: "storefront", path: "/v1/me/storefront", target: &result.Storefront, phase: FetchStorefront},
		{name: "playlists", path: "/v1/me/library/playlists?limit=100", target: &result.Playlists, phase: FetchPlaylists},
		{name: "songs", path: "/v1/me/library/songs?limit=100", target: &result.Songs, phase: FetchSongs},
		{name: "albums", path: "/v1/me/library/albums?limit=100", target: &result.Albums, phase: FetchAlbums},
		{name: "artists", path: "/v1/me/library/artists?limit=100", target: &result.Artists, phase: FetchArtists},
		{name: "recently played", path: "/v1/me/recent/played/tracks", target: &result.Recent, phase: FetchRecent},
	}

	for i, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		e.sendProgress(progress, endpointUpdate(endpoint, i+1, len(endpoints)))

		resp, err := e.api.Get(ctx, endpoint.path)
		if err != nil {
			e.logger.Warn("dump endpoint failed", "path", endpoint.path, "err", err)
			result.Errors = append(result.Errors, EndpointResult{Endpoint: endpoint.path, Error: err})
			continue
		}
		*endpoint.target = resp.JSONData
	}

	return result, nil
}
