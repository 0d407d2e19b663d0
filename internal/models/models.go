// package models defines the data model for the playlist link service
package models

import (
	"regexp"
	"time"
)

// ChannelIDPattern matches a canonical channel ID: "UC" followed by at least 20 ID characters.
var ChannelIDPattern = regexp.MustCompile(`^UC[A-Za-z0-9_-]{20,}$`)

// ResolvedChannel is a channel resolved to its canonical ID with its details.
type ResolvedChannel struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Description  string `json:"description"`
	Handle       string `json:"handle,omitempty"`
	VideoCount   int    `json:"videoCount"`
}

// ChannelCandidate is a search hit offered for disambiguation.
type ChannelCandidate struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Resolution is the successful outcome of channel resolution.
//
// Exactly one of Channel or Candidates is set.
type Resolution struct {
	Channel    *ResolvedChannel
	Candidates []ChannelCandidate
}

// Ambiguous reports whether the caller must pick among candidates.
func (r *Resolution) Ambiguous() bool {
	return r != nil && r.Channel == nil && len(r.Candidates) > 0
}

// PlaylistSummary describes one playlist of a channel.
type PlaylistSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ItemCount    int    `json:"itemCount"`
}

// VideoDetail is a playlist video enriched with its detail record.
type VideoDetail struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	PublishedAt  time.Time `json:"publishedAt,omitzero"`
	Duration     string    `json:"duration"` // ISO-8601, e.g. PT4M13S
}

// URL returns the watch URL for the video.
func (v VideoDetail) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// VideoPage is one page of playlist videos in playlist order.
//
// NextCursor is empty on the last page. TotalCount is the upstream membership count,
// which may exceed the number of videos returned once unavailable entries are dropped.
type VideoPage struct {
	Videos     []VideoDetail `json:"videos"`
	NextCursor string        `json:"nextCursor,omitempty"`
	TotalCount int           `json:"totalCount"`
}

// Playlist holds playlist metadata used by exports.
type Playlist struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	ItemCount    int    `json:"itemCount"`
}

// PlaylistExport represents a playlist with every available video, in playlist order.
type PlaylistExport struct {
	Playlist   Playlist      `json:"playlist"`
	Videos     []VideoDetail `json:"videos"`
	TotalCount int           `json:"totalCount"`
}

// PlaylistExportResult records the outcome of exporting one playlist during a bulk export.
type PlaylistExportResult struct {
	PlaylistID   string
	PlaylistName string
	Success      bool
	Files        []string
	Error        error
}

// BulkExportResult summarizes a bulk export of a channel's playlists.
type BulkExportResult struct {
	ChannelID         string
	TotalPlaylists    int
	SuccessfulExports int
	FailedExports     int
	Results           []PlaylistExportResult
	OutputDirectory   string
	ManifestPath      string
}
