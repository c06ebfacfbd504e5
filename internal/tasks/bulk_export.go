package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/desertthunder/amkit/internal/formatter"
	"github.com/desertthunder/amkit/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ManifestFile is the name of the manifest written into the output directory.
const ManifestFile = "export_manifest.json"

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     string  // Export format: csv, markdown, json, text
	OutputDir  string  // Base output directory (default: applemusic_export_{epoch})
	NumWorkers int     // Concurrent exports (default: 4, max: 10)
	RateLimit  float64 // Playlist exports started per second (default: 5)
}

// BulkExportResult is the outcome of a bulk export and where its manifest was written.
type BulkExportResult struct {
	formatter.BulkExportResult
	ManifestPath string
}

// BulkExport exports multiple playlists concurrently with rate limiting and progress tracking.
//
// Results keep the order of ids. Partial failures are recorded per playlist; the returned error
// is non-nil only for setup failures, cancellation, or a manifest that could not be written.
func (e *Engine) BulkExport(ctx context.Context, progress chan<- ProgressUpdate, ids []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no playlists to export", shared.ErrMissingArgument)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("applemusic_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	results := make([]formatter.PlaylistResult, len(ids))
	var completed atomic.Int32

	e.sendProgress(progress, exportStartedUpdate(len(ids)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.NumWorkers)
	for i, id := range ids {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				results[i] = formatter.PlaylistResult{PlaylistID: id, Err: err}
				return err
			}

			res := e.exportOne(gctx, id, opts)
			results[i] = res

			step := int(completed.Add(1))
			if res.Err != nil {
				name := res.PlaylistName
				if name == "" {
					name = id
				}
				e.sendProgress(progress, exportFailedUpdate(step, len(ids), name, res.Err))
			} else {
				e.sendProgress(progress, exportCompletedUpdate(step, len(ids), res.PlaylistName, len(res.Files)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &BulkExportResult{
		BulkExportResult: formatter.BulkExportResult{Results: results, OutputDirectory: opts.OutputDir},
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestFile)
	if err := formatter.WriteBulkExportManifest(result.BulkExportResult, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

func (e *Engine) exportOne(ctx context.Context, id string, opts BulkExportOpts) formatter.PlaylistResult {
	res := formatter.PlaylistResult{PlaylistID: id}

	export, err := e.svc.ExportPlaylist(ctx, id)
	if err != nil {
		res.Err = fmt.Errorf("failed to fetch playlist: %w", err)
		return res
	}
	res.PlaylistName = export.Playlist.Name

	files, err := e.writer.Write(ctx, export, opts.Format, opts.OutputDir)
	if err != nil {
		res.Err = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return res
	}
	res.Files = files

	e.logger.Debug("exported playlist", "id", id, "files", len(files))
	return res
}
