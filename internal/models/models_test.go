package models

import "testing"

func TestPlaylistExport(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		var nilExport *PlaylistExport
		if err := nilExport.Validate(); err == nil {
			t.Error("expected error for nil export")
		}

		if err := (&PlaylistExport{}).Validate(); err == nil {
			t.Error("expected error for missing name")
		}

		if err := (&PlaylistExport{Playlist: Playlist{Name: "Mix"}}).Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("ISRCs", func(t *testing.T) {
		export := &PlaylistExport{Tracks: []Track{
			{ID: "1", ISRC: "USRC17607839"},
			{ID: "2"},
			{ID: "3", ISRC: "GBAYE0601498"},
		}}

		isrcs := export.ISRCs()
		if len(isrcs) != 2 {
			t.Fatalf("expected 2 ISRCs, got %d", len(isrcs))
		}
		if isrcs[0] != "USRC17607839" || isrcs[1] != "GBAYE0601498" {
			t.Errorf("unexpected ISRCs: %v", isrcs)
		}
	})
}
