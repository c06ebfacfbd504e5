package models

import "fmt"

// Playlist represents a music playlist
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
}

// PlaylistExport represents a playlist with all its tracks
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Tracks   []Track  `json:"tracks"`
}

// Track represents a music track
type Track struct {
	ID        string `json:"id"`
	CatalogID string `json:"catalog_id,omitempty"` // set when a library track is matched to the catalog
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album,omitempty"`
	Duration  int    `json:"duration"`       // Duration in seconds
	ISRC      string `json:"isrc,omitempty"` // International Standard Recording Code for matching
}

// Validate checks that a playlist export can be imported.
func (p *PlaylistExport) Validate() error {
	if p == nil {
		return fmt.Errorf("playlist export is nil")
	}
	if p.Playlist.Name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}

// ISRCs returns the non-empty ISRCs of the export's tracks in order.
func (p *PlaylistExport) ISRCs() []string {
	isrcs := make([]string, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		if t.ISRC != "" {
			isrcs = append(isrcs, t.ISRC)
		}
	}
	return isrcs
}
