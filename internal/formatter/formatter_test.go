package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/amkit/internal/models"
	"github.com/desertthunder/amkit/internal/shared"
	th "github.com/desertthunder/amkit/internal/testing"
)

func testExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          "p.test123",
			Name:        "Test Playlist",
			Description: "A test playlist",
			TrackCount:  2,
			Public:      true,
		},
		Tracks: []models.Track{
			{
				ID:        "i.track1",
				CatalogID: "1440857781",
				Title:     "Song One",
				Artist:    "Artist One",
				Album:     "Album One",
				Duration:  180,
				ISRC:      "USRC12345678",
			},
			{
				ID:       "i.track2",
				Title:    "Song Two",
				Artist:   "Artist Two",
				Duration: 3725,
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Catalog ID,Title,Artist,Album,Duration,ISRC" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "i.track1,1440857781,Song One,Artist One,Album One,180,USRC12345678" {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if lines[2] != "i.track2,,Song Two,Artist Two,,3725," {
			t.Errorf("unexpected second row: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(testExport(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			for _, want := range []string{
				"# Test Playlist",
				"**Description**: A test playlist",
				"**Tracks**: 2",
				"**Visibility**: Public",
				"1. Artist One - Song One (Album One) [3:00]",
				"2. Artist Two - Song Two [1:02:05]",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("Markdown missing %q, got:\n%s", want, output)
				}
			}
			if strings.Contains(output, "![Cover]") {
				t.Error("Markdown should not reference a cover")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(testExport(), "cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "![Cover](cover.jpg)") {
				t.Error("Markdown missing cover image")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Playlist: Test Playlist\nDescription: A test playlist\nTracks: 2\n\n") {
			t.Errorf("unexpected text header:\n%s", output)
		}
		if !strings.Contains(output, "2. Artist Two - Song Two\n") {
			t.Errorf("text missing second track:\n%s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(testExport().Playlist)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var playlist models.Playlist
		if err := json.Unmarshal(data, &playlist); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if playlist.ID != "p.test123" || playlist.Name != "Test Playlist" {
			t.Errorf("unexpected metadata %+v", playlist)
		}
		if strings.Contains(string(data), "tracks") {
			t.Error("metadata should not include tracks")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(testExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var export models.PlaylistExport
		if err := json.Unmarshal(data, &export); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(export.Tracks) != 2 || export.Tracks[0].ISRC != "USRC12345678" {
			t.Errorf("unexpected export %+v", export)
		}
	})
}

func TestDownloadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage(ctx, nil, "")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpeg-bytes"))
		}))
		defer server.Close()

		data, err := DownloadImage(ctx, server.Client(), server.URL+"/600x600.jpg")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != "jpeg-bytes" {
			t.Errorf("unexpected data %q", data)
		}
	})

	t.Run("BadStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		if _, err := DownloadImage(ctx, server.Client(), server.URL); err == nil {
			t.Error("expected error for non-200 status")
		}
	})

	t.Run("ReadFailure", func(t *testing.T) {
		client := &http.Client{Transport: th.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       &th.FCloser{},
			Header:     http.Header{},
		}, nil)}

		if _, err := DownloadImage(ctx, client, "https://example.com/cover.jpg"); err == nil {
			t.Error("expected error when body cannot be read")
		}
	})
}

func TestWriters(t *testing.T) {
	ctx := context.Background()

	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(testExport(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "p.test123_tracks.csv" || result.MetadataFile != "p.test123_metadata.json" {
				t.Errorf("unexpected files %+v", result)
			}
			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "custom")

			result, err := WriteCSVExport(testExport(), base)
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			th.AssertFileExists(t, base+"_tracks.csv")

			content := th.MustReadFile(t, result.MetadataFile)
			if !strings.Contains(content, `"name": "Test Playlist"`) {
				t.Errorf("metadata missing name: %s", content)
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithCover", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("jpeg-bytes"))
			}))
			defer server.Close()

			dir := filepath.Join(t.TempDir(), "playlist")
			w := &Writer{Client: server.Client()}

			result, err := w.WriteMarkdownExport(ctx, testExport(), dir, server.URL+"/cover")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			th.AssertDirExists(t, dir)
			th.AssertFileExists(t, filepath.Join(dir, "cover.jpg"))
			if len(result.Files) != 2 {
				t.Errorf("expected cover and README, got %v", result.Files)
			}

			readme := th.MustReadFile(t, filepath.Join(dir, "README.md"))
			if !strings.Contains(readme, "![Cover](cover.jpg)") {
				t.Error("README missing cover reference")
			}
		})

		t.Run("CoverFailureIsNotFatal", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			dir := filepath.Join(t.TempDir(), "playlist")
			w := &Writer{Client: server.Client()}

			result, err := w.WriteMarkdownExport(ctx, testExport(), dir, server.URL)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}
			if result.CoverImage != "" {
				t.Errorf("expected no cover, got %s", result.CoverImage)
			}
			if _, err := os.Stat(filepath.Join(dir, "cover.jpg")); !os.IsNotExist(err) {
				t.Error("expected no cover file")
			}
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tracks.txt")

		got, err := WriteTextExport(testExport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteJSONExport(testExport(), "")
		if err != nil {
			t.Fatalf("WriteJSONExport failed: %v", err)
		}
		if path != "p.test123.json" {
			t.Errorf("expected default path, got %s", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("Write", func(t *testing.T) {
		w := &Writer{}

		tc := []struct {
			format string
			files  int
		}{
			{FormatCSV, 2},
			{FormatMarkdown, 1},
			{FormatJSON, 1},
			{FormatText, 1},
		}

		for _, tt := range tc {
			t.Run(tt.format, func(t *testing.T) {
				files, err := w.Write(ctx, testExport(), tt.format, t.TempDir())
				if err != nil {
					t.Fatalf("Write failed: %v", err)
				}
				if len(files) != tt.files {
					t.Errorf("expected %d files, got %v", tt.files, files)
				}
				for _, f := range files {
					th.AssertFileExists(t, f)
				}
			})
		}

		t.Run("unknown", func(t *testing.T) {
			if _, err := w.Write(ctx, testExport(), "xml", t.TempDir()); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("WriteBulkExportManifest", func(t *testing.T) {
		result := BulkExportResult{
			OutputDirectory: "exports",
			Results: []PlaylistResult{
				{PlaylistID: "p.1", PlaylistName: "My Playlist 1", Files: []string{"p.1_tracks.csv"}},
				{PlaylistID: "p.2", PlaylistName: "Failed Playlist", Err: errors.New("authentication failed")},
			},
		}

		if result.Succeeded() != 1 {
			t.Errorf("expected 1 success, got %d", result.Succeeded())
		}

		path := filepath.Join(t.TempDir(), "manifest.json")
		if err := WriteBulkExportManifest(result, FormatCSV, path); err != nil {
			t.Fatalf("WriteBulkExportManifest failed: %v", err)
		}

		content := th.MustReadFile(t, path)
		for _, want := range []string{
			`"format": "csv"`,
			`"total_playlists": 2`,
			`"successful_exports": 1`,
			`"failed_exports": 1`,
			`"status": "success"`,
			`"status": "failed"`,
			`"authentication failed"`,
			`"My Playlist 1"`,
		} {
			if !strings.Contains(content, want) {
				t.Errorf("manifest missing %s", want)
			}
		}
	})
}
