package tasks

import (
	"fmt"

	"github.com/desertthunder/amkit/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	FetchDest
	CompareTracks
	FetchStorefront
	FetchPlaylists
	FetchSongs
	FetchAlbums
	FetchArtists
	FetchRecent
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case FetchDest:
		return "fetch_dest"
	case CompareTracks:
		return "compare"
	case FetchStorefront:
		return "fetch_storefront"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchSongs:
		return "fetch_songs"
	case FetchAlbums:
		return "fetch_albums"
	case FetchArtists:
		return "fetch_artists"
	case FetchRecent:
		return "fetch_recent"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

func fetchSourceUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching source playlist (%s)...", id),
	}
}

func fetchDestUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDest,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching destination playlist (%s)...", id),
	}
}

func compareUpdate(source, dest *models.PlaylistExport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CompareTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Comparing %d tracks against %d...", len(source.Tracks), len(dest.Tracks)),
	}
}

func endpointUpdate(endpoint endpointOperation, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   endpoint.phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s...", endpoint.name),
	}
}

func exportStartedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d playlists...", total),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
