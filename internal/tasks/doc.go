// Package tasks implements channel and playlist operations on top of [services.Service].
//
// # Core Operations
//
//  1. [ChannelResolver.Resolve] : Free-form input to a channel
//     - Canonical channel IDs (UC...) are fetched directly
//     - /channel/UC... URLs are reduced to their ID
//     - Handles (@name or youtube.com/@name) go through the forHandle lookup
//     - Anything else, and handles that fail, fall back to a channel search
//     - Several search hits come back as candidates instead of a channel
//
//  2. [PlaylistLister.ListAll] : Every playlist of a channel
//     - Follows page cursors until the last page, 50 playlists per request
//     - [FilterPlaylists] narrows the result by fuzzy title match
//
//  3. [PlaylistVideoAggregator.FetchPage] : One page of playlist videos
//     - Joins membership entries with video details, in membership order
//     - Placeholders and videos without details are dropped
//
//  4. [PlaylistExporter.ExportPlaylist] and [BulkExporter.BulkExport] : File exports
//     - Walks every page of a playlist under a rate limit
//     - Bulk exports fan out over a worker pool and write export_manifest.json
//
// # Progress Reporting
//
// Long-running operations accept a ProgressUpdate channel, which may be nil.
// Sends never block; updates are dropped when the channel is full.
package tasks
