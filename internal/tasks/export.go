package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"golang.org/x/time/rate"
)

const defaultRateLimit = 5.0

// ExportOpts paces export requests.
type ExportOpts struct {
	RateLimit float64 // Pages per second (default: 5)
}

// PlaylistExporter collects every video of a playlist by walking the aggregator's pages.
type PlaylistExporter struct {
	svc        services.Service
	aggregator *PlaylistVideoAggregator
}

// NewPlaylistExporter creates an exporter over svc.
func NewPlaylistExporter(svc services.Service) *PlaylistExporter {
	return &PlaylistExporter{svc: svc, aggregator: NewPlaylistVideoAggregator(svc)}
}

// ExportPlaylist looks up the playlist and concatenates every page of its videos.
//
// Page requests share a limiter so a walk never exceeds opts.RateLimit pages per second.
// A cursor seen twice stops the walk with an error.
func (e *PlaylistExporter) ExportPlaylist(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, opts ExportOpts) (*models.PlaylistExport, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}
	p, err := e.svc.PlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	export := &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:           p.ID,
			Title:        p.Snippet.Title,
			Description:  p.Snippet.Description,
			ThumbnailURL: p.Snippet.Thumbnails.MediumURL(),
			ItemCount:    p.ContentDetails.ItemCount,
		},
		Videos: []models.VideoDetail{},
	}
	if export.Playlist.ID == "" {
		export.Playlist.ID = playlistID
	}
	sendProgress(progress, fetchPlaylistUpdate(playlistID, export.Playlist.Title))

	seen := map[string]bool{}
	cursor := ""
	for pageNum := 1; ; pageNum++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := e.aggregator.FetchPage(ctx, playlistID, cursor)
		if err != nil {
			return nil, err
		}

		export.Videos = append(export.Videos, page.Videos...)
		export.TotalCount = page.TotalCount
		sendProgress(progress, fetchVideosUpdate(pageNum, len(export.Videos), page.TotalCount))

		if page.NextCursor == "" {
			return export, nil
		}
		if seen[page.NextCursor] {
			return nil, fmt.Errorf("%w: playlist cursor %q repeated", shared.ErrAPIRequest, page.NextCursor)
		}
		seen[page.NextCursor] = true
		cursor = page.NextCursor
	}
}
