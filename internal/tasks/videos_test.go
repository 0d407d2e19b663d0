package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	tu "github.com/desertthunder/ytlink/internal/testing"
)

// seedPlaylist registers n membership entries v0..v{n-1} with details for each video.
func seedPlaylist(svc *tu.MockService, playlistID string, n int) []string {
	ids := make([]string, n)
	items := make([]services.PlaylistItemResource, n)
	for i := range n {
		ids[i] = fmt.Sprintf("v%03d", i)
		items[i] = tu.ItemFixture(ids[i], i)
		svc.VideoData[ids[i]] = tu.VideoFixture(ids[i], "Video "+ids[i], "PT1M")
	}
	svc.Items[playlistID] = items
	return ids
}

func TestPlaylistVideoAggregator(t *testing.T) {
	ctx := context.Background()

	t.Run("empty playlist", func(t *testing.T) {
		svc := tu.NewMockService()
		page, err := NewPlaylistVideoAggregator(svc).FetchPage(ctx, "PLempty", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if page.Videos == nil || len(page.Videos) != 0 {
			t.Errorf("expected empty non-nil videos, got %v", page.Videos)
		}
		if page.NextCursor != "" || page.TotalCount != 0 {
			t.Errorf("expected no cursor and zero total, got %q %d", page.NextCursor, page.TotalCount)
		}
		if svc.Calls("Videos") != 0 {
			t.Error("expected no video detail call for an empty page")
		}
	})

	t.Run("maps details", func(t *testing.T) {
		svc := tu.NewMockService()
		seedPlaylist(svc, "PL1", 1)

		page, err := NewPlaylistVideoAggregator(svc).FetchPage(ctx, "PL1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		v := page.Videos[0]
		if v.ID != "v000" || v.Title != "Video v000" || v.Duration != "PT1M" {
			t.Errorf("unexpected video %+v", v)
		}
		if !v.PublishedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
			t.Errorf("unexpected publishedAt %v", v.PublishedAt)
		}
		if v.ThumbnailURL != "https://img.test/v000/mq.jpg" {
			t.Errorf("unexpected thumbnail %s", v.ThumbnailURL)
		}
	})

	t.Run("malformed publishedAt stays zero", func(t *testing.T) {
		svc := tu.NewMockService()
		seedPlaylist(svc, "PL1", 1)
		v := svc.VideoData["v000"]
		v.Snippet.PublishedAt = "yesterday"
		svc.VideoData["v000"] = v

		page, err := NewPlaylistVideoAggregator(svc).FetchPage(ctx, "PL1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !page.Videos[0].PublishedAt.IsZero() {
			t.Errorf("expected zero publishedAt, got %v", page.Videos[0].PublishedAt)
		}

		data, err := json.Marshal(page.Videos[0])
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "publishedAt") {
			t.Errorf("expected publishedAt to be omitted, got %s", data)
		}
	})

	t.Run("output follows membership order regardless of batch order", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for trial := range 20 {
			svc := tu.NewMockService()
			n := 1 + rng.Intn(50)
			ids := seedPlaylist(svc, "PL", n)

			// shuffle membership order, then reverse the batch response
			rng.Shuffle(len(svc.Items["PL"]), func(i, j int) {
				svc.Items["PL"][i], svc.Items["PL"][j] = svc.Items["PL"][j], svc.Items["PL"][i]
			})
			svc.ShuffleVideos = true

			// drop a random subset of details
			want := []string{}
			for _, item := range svc.Items["PL"] {
				id := item.VideoID()
				if rng.Intn(5) == 0 {
					delete(svc.VideoData, id)
					continue
				}
				want = append(want, id)
			}

			page, err := NewPlaylistVideoAggregator(svc).FetchPage(ctx, "PL", "")
			if err != nil {
				t.Fatalf("trial %d: expected no error, got %v", trial, err)
			}

			got := make([]string, len(page.Videos))
			for i, v := range page.Videos {
				got[i] = v.ID
			}
			if !slices.Equal(got, want) {
				t.Fatalf("trial %d: order mismatch\n got %v\nwant %v", trial, got, want)
			}
			if page.TotalCount != len(ids) {
				t.Errorf("trial %d: expected totalCount %d, got %d", trial, len(ids), page.TotalCount)
			}
		}
	})

	t.Run("drops entries without a video reference", func(t *testing.T) {
		svc := tu.NewMockService()
		seedPlaylist(svc, "PL", 3)
		svc.Items["PL"] = append(svc.Items["PL"][:1], append([]services.PlaylistItemResource{tu.ItemFixture("", 1)}, svc.Items["PL"][1:]...)...)

		page, err := NewPlaylistVideoAggregator(svc).FetchPage(ctx, "PL", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.Videos) != 3 {
			t.Errorf("expected 3 videos, got %d", len(page.Videos))
		}
		if len(svc.VideoBatches) != 1 || len(svc.VideoBatches[0]) != 3 {
			t.Errorf("expected one batch of 3 IDs, got %v", svc.VideoBatches)
		}
		if page.TotalCount != 4 {
			t.Errorf("expected upstream total 4, got %d", page.TotalCount)
		}
	})

	t.Run("page of only placeholders makes no detail call", func(t *testing.T) {
		svc := tu.NewMockService()
		svc.Items["PL"] = []services.PlaylistItemResource{tu.ItemFixture("", 0), tu.ItemFixture("", 1)}

		page, err := NewPlaylistVideoAggregator(svc).FetchPage(ctx, "PL", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.Videos) != 0 || svc.Calls("Videos") != 0 {
			t.Errorf("expected no videos and no detail call, got %d videos %d calls", len(page.Videos), svc.Calls("Videos"))
		}
	})

	t.Run("pagination visits every entry once and terminates", func(t *testing.T) {
		for _, n := range []int{1, 49, 50, 51, 120, 150} {
			t.Run(fmt.Sprintf("%d entries", n), func(t *testing.T) {
				svc := tu.NewMockService()
				ids := seedPlaylist(svc, "PL", n)
				agg := NewPlaylistVideoAggregator(svc)

				bound := (n + services.MaxResultsPerPage - 1) / services.MaxResultsPerPage
				seen := map[string]int{}
				cursor, calls := "", 0
				for {
					calls++
					if calls > bound {
						t.Fatalf("exceeded %d calls", bound)
					}
					page, err := agg.FetchPage(ctx, "PL", cursor)
					if err != nil {
						t.Fatalf("expected no error, got %v", err)
					}
					if page.TotalCount != n {
						t.Errorf("expected stable totalCount %d, got %d", n, page.TotalCount)
					}
					for _, v := range page.Videos {
						seen[v.ID]++
					}
					if page.NextCursor == "" {
						break
					}
					cursor = page.NextCursor
				}

				for _, id := range ids {
					if seen[id] != 1 {
						t.Errorf("expected %s visited once, got %d", id, seen[id])
					}
				}
				for _, batch := range svc.VideoBatches {
					if len(batch) > services.MaxResultsPerPage {
						t.Errorf("batch exceeds limit: %d", len(batch))
					}
				}
			})
		}
	})

	t.Run("cursor is passed through unmodified", func(t *testing.T) {
		svc := tu.NewMockService()
		seedPlaylist(svc, "PL", 60)
		agg := NewPlaylistVideoAggregator(svc)

		first, err := agg.FetchPage(ctx, "PL", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := agg.FetchPage(ctx, "PL", first.NextCursor); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if svc.PageTokens[1] != first.NextCursor {
			t.Errorf("expected cursor %q, got %q", first.NextCursor, svc.PageTokens[1])
		}
	})

	t.Run("upstream failures abort the page", func(t *testing.T) {
		tests := []struct {
			name  string
			setup func(*tu.MockService)
		}{
			{"playlist items", func(m *tu.MockService) { m.ItemsErr = fmt.Errorf("%w: status 404", shared.ErrAPIRequest) }},
			{"video details", func(m *tu.MockService) { m.VideosErr = fmt.Errorf("%w: status 500", shared.ErrAPIRequest) }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := tu.NewMockService()
				seedPlaylist(svc, "PL", 5)
				tt.setup(svc)

				page, err := NewPlaylistVideoAggregator(svc).FetchPage(ctx, "PL", "")
				if !errors.Is(err, shared.ErrAPIRequest) {
					t.Errorf("expected ErrAPIRequest, got %v", err)
				}
				if page != nil {
					t.Error("expected no partial page")
				}
			})
		}
	})

	t.Run("missing playlist ID", func(t *testing.T) {
		_, err := NewPlaylistVideoAggregator(tu.NewMockService()).FetchPage(ctx, " ", "")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
