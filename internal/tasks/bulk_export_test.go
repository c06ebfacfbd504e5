package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/amkit/internal/formatter"
	"github.com/desertthunder/amkit/internal/models"
	"github.com/desertthunder/amkit/internal/shared"
	tu "github.com/desertthunder/amkit/internal/testing"
)

func bulkService(n int) (*tu.MockService, []string) {
	svc := &tu.MockService{Exports: map[string]*models.PlaylistExport{}}
	ids := make([]string, n)
	for i := range n {
		id := "p." + string(rune('a'+i))
		ids[i] = id
		svc.Exports[id] = export(id, "Playlist "+id, models.Track{ID: "i." + id, Title: "Song", Artist: "Artist", Duration: 200})
	}
	return svc, ids
}

func TestBulkExport(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		format    string
		count     int
		wantFiles int
	}{
		{name: "json", format: formatter.FormatJSON, count: 1, wantFiles: 1},
		{name: "csv", format: formatter.FormatCSV, count: 3, wantFiles: 2},
		{name: "text", format: formatter.FormatText, count: 2, wantFiles: 1},
		{name: "markdown", format: formatter.FormatMarkdown, count: 2, wantFiles: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ids := bulkService(tt.count)
			dir := t.TempDir()
			engine := NewEngine(svc, nil, nil, nil)

			result, err := engine.BulkExport(ctx, nil, ids, BulkExportOpts{Format: tt.format, OutputDir: dir, RateLimit: 1000})
			if err != nil {
				t.Fatalf("BulkExport failed: %v", err)
			}
			if result.Succeeded() != tt.count {
				t.Errorf("expected %d successes, got %d", tt.count, result.Succeeded())
			}
			for i, res := range result.Results {
				if res.PlaylistID != ids[i] {
					t.Errorf("result %d: expected %s, got %s", i, ids[i], res.PlaylistID)
				}
				if len(res.Files) != tt.wantFiles {
					t.Errorf("result %d: expected %d files, got %d", i, tt.wantFiles, len(res.Files))
				}
				for _, f := range res.Files {
					tu.AssertFileExists(t, f)
				}
			}
			if result.ManifestPath != filepath.Join(dir, ManifestFile) {
				t.Errorf("unexpected manifest path %s", result.ManifestPath)
			}
		})
	}

	t.Run("partial failure", func(t *testing.T) {
		svc, ids := bulkService(2)
		ids = append(ids, "p.missing")
		dir := t.TempDir()
		progress := make(chan ProgressUpdate, 10)

		engine := NewEngine(svc, nil, nil, nil)
		result, err := engine.BulkExport(ctx, progress, ids, BulkExportOpts{Format: formatter.FormatJSON, OutputDir: dir, RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if result.Succeeded() != 2 {
			t.Errorf("expected 2 successes, got %d", result.Succeeded())
		}
		if result.Results[2].Err == nil {
			t.Error("expected failure for missing playlist")
		}

		var manifest struct {
			TotalPlaylists    int `json:"total_playlists"`
			SuccessfulExports int `json:"successful_exports"`
			FailedExports     int `json:"failed_exports"`
		}
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
			t.Fatalf("invalid manifest: %v", err)
		}
		if manifest.TotalPlaylists != 3 || manifest.SuccessfulExports != 2 || manifest.FailedExports != 1 {
			t.Errorf("unexpected manifest counts: %+v", manifest)
		}

		updates := drain(progress)
		if len(updates) != 4 {
			t.Fatalf("expected 4 progress updates, got %d", len(updates))
		}
		failed := 0
		for _, u := range updates {
			if u.Phase != ExportPlaylist {
				t.Errorf("unexpected phase %v", u.Phase)
			}
			if strings.Contains(u.Message, "✗") {
				failed++
			}
		}
		if failed != 1 {
			t.Errorf("expected 1 failure update, got %d", failed)
		}
	})

	t.Run("unknown format fails each playlist", func(t *testing.T) {
		svc, ids := bulkService(1)
		engine := NewEngine(svc, nil, nil, nil)

		result, err := engine.BulkExport(ctx, nil, ids, BulkExportOpts{Format: "xml", OutputDir: t.TempDir(), RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if !errors.Is(result.Results[0].Err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", result.Results[0].Err)
		}
	})

	t.Run("default output directory", func(t *testing.T) {
		originalDir := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, originalDir)
		svc, ids := bulkService(1)
		engine := NewEngine(svc, nil, nil, nil)

		result, err := engine.BulkExport(ctx, nil, ids, BulkExportOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if !strings.HasPrefix(result.OutputDirectory, "applemusic_export_") {
			t.Errorf("unexpected output directory %s", result.OutputDirectory)
		}
		tu.AssertDirExists(t, result.OutputDirectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		svc, ids := bulkService(2)
		engine := NewEngine(svc, nil, nil, nil)
		if _, err := engine.BulkExport(ctx, nil, ids, BulkExportOpts{OutputDir: t.TempDir()}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		engine := NewEngine(nil, nil, nil, nil)
		if _, err := engine.BulkExport(ctx, nil, []string{"p.1"}, BulkExportOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}

		svc, _ := bulkService(1)
		engine = NewEngine(svc, nil, nil, nil)
		if _, err := engine.BulkExport(ctx, nil, nil, BulkExportOpts{}); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("unwritable output directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		svc, ids := bulkService(1)
		engine := NewEngine(svc, nil, nil, nil)
		if _, err := engine.BulkExport(ctx, nil, ids, BulkExportOpts{OutputDir: filepath.Join(file, "sub")}); err == nil {
			t.Error("expected error creating output directory")
		}
	})
}
