// Package server provides the HTTP surface over channel resolution, playlist listing, and the sync slot.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps the whole mux, so preflight requests and unmatched paths pass through it too.
// [Server] installs [RequestLogger], [CORS] and [Recoverer] in that order.
//
// The [BasicRouter] implementation registers [http.ServeMux] method patterns ("GET /api/playlist/{playlistId}").
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
//   - [ChannelHandler] : /api/find-channel, /api/channel-playlists, /api/playlist/{playlistId}
//   - [SyncHandler] : /api/sync-upload, /api/sync-download
//
// # Errors
//
// Error bodies are {"error": "..."}. Missing parameters are 400, lookups that find nothing are 404,
// and upstream failures are 500 with the detail logged rather than returned.
//
// Handlers run upstream calls on a context detached from the client connection, so a disconnect
// does not abort a request that is already in flight.
package server
