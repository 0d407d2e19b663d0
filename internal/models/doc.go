// Package models defines the request-scoped entities returned by the ytlink services.
//
// Channel resolution produces either a [ResolvedChannel] or a list of [ChannelCandidate] values
// wrapped in a [Resolution]. Playlist listing produces [PlaylistSummary] values, and the video
// aggregator produces a [VideoPage] of [VideoDetail] entries ordered by playlist position.
//
// Exports walk every page of a playlist and collect the result as a [PlaylistExport].
//
// Nothing in this package is persisted; values are built fresh per call.
package models
