package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
)

const (
	defaultWorkers = 5
	maxWorkers     = 10
	manifestName   = "export_manifest.json"
)

// BulkExportOpts contains configuration for exporting every playlist of a channel.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: ytlink_export_{channel}_{epoch})
	NumWorkers int     // Concurrent workers (default: 5, max: 10)
	RateLimit  float64 // Page requests per second per playlist walk (default: 5)
}

// BulkExporter lists a channel's playlists and exports each one through a worker pool.
type BulkExporter struct {
	lister   *PlaylistLister
	exporter *PlaylistExporter
}

// NewBulkExporter creates a bulk exporter over svc.
func NewBulkExporter(svc services.Service) *BulkExporter {
	return &BulkExporter{lister: NewPlaylistLister(svc), exporter: NewPlaylistExporter(svc)}
}

type exportJob struct {
	index    int
	playlist models.PlaylistSummary
}

// BulkExport writes one file set per playlist plus export_manifest.json.
//
// A failed playlist is recorded in the result and the manifest; the call itself fails only
// when listing fails or the manifest cannot be written.
func (b *BulkExporter) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, channelID string, opts BulkExportOpts) (*models.BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if !formatter.ValidFormat(opts.Format) {
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("ytlink_export_%s_%d", channelID, time.Now().Unix())
	}
	opts.NumWorkers = clampWorkers(opts.NumWorkers)

	playlists, err := b.lister.ListAll(ctx, channelID)
	if err != nil {
		return nil, err
	}
	sendProgress(prog, listPlaylistsUpdate(channelID, len(playlists)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	total := len(playlists)
	result := &models.BulkExportResult{
		ChannelID:       channelID,
		TotalPlaylists:  total,
		OutputDirectory: opts.OutputDir,
		Results:         make([]models.PlaylistExportResult, 0, total),
	}

	jobs := make(chan exportJob, total)
	results := make(chan models.PlaylistExportResult, total)

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go b.exportWorker(ctx, &wg, prog, total, jobs, results, opts)
	}

	for i, p := range playlists {
		jobs <- exportJob{index: i, playlist: p}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, total, res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, total, res.PlaylistName, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	if err := formatter.WriteBulkExportManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker drains jobs until the channel closes; after cancellation remaining jobs are recorded as failed.
func (b *BulkExporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	prog chan<- ProgressUpdate,
	total int,
	jobs <-chan exportJob,
	results chan<- models.PlaylistExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		res := models.PlaylistExportResult{
			PlaylistID:   job.playlist.ID,
			PlaylistName: job.playlist.Title,
			Files:        []string{},
		}

		if err := ctx.Err(); err != nil {
			res.Error = err
			results <- res
			continue
		}

		sendProgress(prog, exportingPlaylistUpdate(job.index+1, total, job.playlist.Title))

		export, err := b.exporter.ExportPlaylist(ctx, nil, job.playlist.ID, ExportOpts{RateLimit: opts.RateLimit})
		if err != nil {
			res.Error = fmt.Errorf("failed to fetch playlist: %w", err)
			results <- res
			continue
		}

		files, err := formatter.WriteExport(export, opts.Format, opts.OutputDir)
		if err != nil {
			res.Error = err
			results <- res
			continue
		}

		res.Files = files
		res.Success = true
		results <- res
	}
}

func clampWorkers(n int) int {
	switch {
	case n <= 0:
		return defaultWorkers
	case n > maxWorkers:
		return maxWorkers
	default:
		return n
	}
}
