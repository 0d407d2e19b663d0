package tasks

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
)

// PlaylistVideoAggregator builds one page of detailed playlist videos in playlist order.
type PlaylistVideoAggregator struct {
	svc services.Service
}

// NewPlaylistVideoAggregator creates an aggregator over svc.
func NewPlaylistVideoAggregator(svc services.Service) *PlaylistVideoAggregator {
	return &PlaylistVideoAggregator{svc: svc}
}

// FetchPage fetches the membership page at cursor ("" for the first page), looks up details
// for its videos, and returns them in membership order.
//
// Entries without a video reference and videos without details are dropped. TotalCount is the
// upstream membership count. Any upstream failure fails the whole page.
func (a *PlaylistVideoAggregator) FetchPage(ctx context.Context, playlistID, cursor string) (*models.VideoPage, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	page, err := a.svc.PlaylistItems(ctx, playlistID, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist items: %w", err)
	}

	result := &models.VideoPage{
		Videos:     []models.VideoDetail{},
		TotalCount: max(page.PageInfo.TotalResults, 0),
	}
	if len(page.Items) == 0 {
		return result, nil
	}
	result.NextCursor = page.NextPageToken

	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		if id := item.VideoID(); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return result, nil
	}

	details := make(map[string]models.VideoDetail, len(ids))
	for batch := range slices.Chunk(ids, services.MaxResultsPerPage) {
		videos, err := a.svc.Videos(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video details: %w", err)
		}
		for _, v := range videos {
			details[v.ID] = toVideoDetail(v)
		}
	}

	for _, id := range ids {
		if v, ok := details[id]; ok {
			result.Videos = append(result.Videos, v)
		}
	}
	return result, nil
}

func toVideoDetail(v services.VideoResource) models.VideoDetail {
	// Missing or malformed timestamps stay zero and are omitted from JSON.
	published, _ := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
	return models.VideoDetail{
		ID:           v.ID,
		Title:        v.Snippet.Title,
		ThumbnailURL: v.Snippet.Thumbnails.MediumURL(),
		PublishedAt:  published,
		Duration:     v.ContentDetails.Duration,
	}
}
