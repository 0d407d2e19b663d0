// package services contains the Service interface and the upstream resource types it returns
package services

import (
	"context"
)

const (
	// MaxResultsPerPage is the upstream cap on list page size and on IDs per videos.list call.
	MaxResultsPerPage = 50
	// MaxSearchResults is the number of channel candidates requested during resolution.
	MaxSearchResults = 10
)

// Service defines the read operations ytlink performs against the YouTube Data API.
//
// Implementations are typed façades only: they return upstream resources as-is and leave
// projection, ordering, and fallback decisions to callers.
type Service interface {
	// ChannelByID fetches snippet, statistics, and contentDetails for a channel.
	// Returns nil without error when the channel does not exist.
	ChannelByID(ctx context.Context, channelID string) (*ChannelResource, error)

	// ChannelIDByHandle looks up the channel ID for an @handle.
	// Returns "" without error when no channel has that handle.
	ChannelIDByHandle(ctx context.Context, handle string) (string, error)

	// SearchChannels runs a channel-typed search, returning at most maxResults hits.
	SearchChannels(ctx context.Context, query string, maxResults int) ([]SearchResult, error)

	// Playlists fetches one page of a channel's playlists. An empty pageToken requests the first page.
	Playlists(ctx context.Context, channelID, pageToken string) (*PlaylistPage, error)

	// PlaylistByID fetches a single playlist. Returns nil without error when it does not exist.
	PlaylistByID(ctx context.Context, playlistID string) (*PlaylistResource, error)

	// PlaylistItems fetches one page of playlist membership entries in position order.
	PlaylistItems(ctx context.Context, playlistID, pageToken string) (*PlaylistItemPage, error)

	// Videos fetches details for up to [MaxResultsPerPage] video IDs.
	// Response order is unspecified and unavailable videos are omitted.
	Videos(ctx context.Context, videoIDs []string) ([]VideoResource, error)
}

// Thumbnail is a single thumbnail rendition.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Thumbnails holds the renditions upstream returns; absent ones are nil.
type Thumbnails struct {
	Default *Thumbnail `json:"default,omitempty"`
	Medium  *Thumbnail `json:"medium,omitempty"`
	High    *Thumbnail `json:"high,omitempty"`
}

// MediumURL returns the medium rendition, falling back to default, or "" when neither exists.
func (t Thumbnails) MediumURL() string {
	switch {
	case t.Medium != nil && t.Medium.URL != "":
		return t.Medium.URL
	case t.Default != nil:
		return t.Default.URL
	default:
		return ""
	}
}

// DefaultURL returns the default rendition, falling back to medium then high.
func (t Thumbnails) DefaultURL() string {
	for _, th := range []*Thumbnail{t.Default, t.Medium, t.High} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

// PageInfo carries upstream paging totals.
type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// ChannelResource is a channels.list item.
type ChannelResource struct {
	ID             string                `json:"id"`
	Snippet        ChannelSnippet        `json:"snippet"`
	Statistics     ChannelStatistics     `json:"statistics"`
	ContentDetails ChannelContentDetails `json:"contentDetails"`
}

type ChannelSnippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CustomURL   string     `json:"customUrl"`
	Thumbnails  Thumbnails `json:"thumbnails"`
}

// ChannelStatistics holds counts, which upstream encodes as decimal strings.
type ChannelStatistics struct {
	VideoCount      string `json:"videoCount"`
	SubscriberCount string `json:"subscriberCount"`
	ViewCount       string `json:"viewCount"`
}

type ChannelContentDetails struct {
	RelatedPlaylists struct {
		Uploads string `json:"uploads"`
	} `json:"relatedPlaylists"`
}

// SearchResult is a search.list item restricted to channels.
type SearchResult struct {
	ID struct {
		Kind      string `json:"kind"`
		ChannelID string `json:"channelId"`
	} `json:"id"`
	Snippet struct {
		ChannelID    string     `json:"channelId"`
		ChannelTitle string     `json:"channelTitle"`
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		Thumbnails   Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
}

// ChannelID returns the hit's channel ID, preferring the resource ID over the snippet.
func (r SearchResult) ChannelID() string {
	if r.ID.ChannelID != "" {
		return r.ID.ChannelID
	}
	return r.Snippet.ChannelID
}

// PlaylistResource is a playlists.list item.
type PlaylistResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		ChannelID   string     `json:"channelId"`
		Thumbnails  Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		ItemCount int `json:"itemCount"`
	} `json:"contentDetails"`
}

// PlaylistPage is one page of playlists.list.
type PlaylistPage struct {
	Items         []PlaylistResource `json:"items"`
	NextPageToken string             `json:"nextPageToken"`
	PageInfo      PageInfo           `json:"pageInfo"`
}

// PlaylistItemResource is a playlistItems.list item: one membership entry.
type PlaylistItemResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title      string `json:"title"`
		Position   int    `json:"position"`
		ResourceID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
	ContentDetails struct {
		VideoID string `json:"videoId"`
	} `json:"contentDetails"`
}

// VideoID returns the referenced video, or "" for placeholders without one.
func (p PlaylistItemResource) VideoID() string {
	if p.ContentDetails.VideoID != "" {
		return p.ContentDetails.VideoID
	}
	return p.Snippet.ResourceID.VideoID
}

// PlaylistItemPage is one page of playlistItems.list.
type PlaylistItemPage struct {
	Items         []PlaylistItemResource `json:"items"`
	NextPageToken string                 `json:"nextPageToken"`
	PageInfo      PageInfo               `json:"pageInfo"`
}

// VideoResource is a videos.list item.
type VideoResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string     `json:"title"`
		PublishedAt string     `json:"publishedAt"`
		Thumbnails  Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}
