package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// PlaylistLister collects every playlist of a channel.
type PlaylistLister struct {
	svc services.Service
}

// NewPlaylistLister creates a lister over svc.
func NewPlaylistLister(svc services.Service) *PlaylistLister {
	return &PlaylistLister{svc: svc}
}

// ListAll requests pages of up to 50 playlists, following cursors until a page has none,
// and returns the summaries in upstream order.
func (l *PlaylistLister) ListAll(ctx context.Context, channelID string) ([]models.PlaylistSummary, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel ID", shared.ErrMissingArgument)
	}

	playlists := []models.PlaylistSummary{}
	seen := map[string]bool{}
	token := ""
	for {
		page, err := l.svc.Playlists(ctx, channelID, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list playlists: %w", err)
		}

		for _, p := range page.Items {
			playlists = append(playlists, models.PlaylistSummary{
				ID:           p.ID,
				Title:        p.Snippet.Title,
				ThumbnailURL: p.Snippet.Thumbnails.MediumURL(),
				ItemCount:    max(p.ContentDetails.ItemCount, 0),
			})
		}

		if page.NextPageToken == "" {
			return playlists, nil
		}
		if seen[page.NextPageToken] {
			return nil, fmt.Errorf("%w: playlist cursor %q repeated", shared.ErrAPIRequest, page.NextPageToken)
		}
		seen[page.NextPageToken] = true
		token = page.NextPageToken
	}
}

// FilterPlaylists keeps playlists whose title fuzzy-matches query, best match first.
//
// An empty query returns playlists unchanged.
func FilterPlaylists(playlists []models.PlaylistSummary, query string) []models.PlaylistSummary {
	query = strings.TrimSpace(query)
	if query == "" {
		return playlists
	}

	titles := make([]string, len(playlists))
	for i, p := range playlists {
		titles[i] = p.Title
	}

	matches := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	filtered := make([]models.PlaylistSummary, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, playlists[m.OriginalIndex])
	}
	return filtered
}
