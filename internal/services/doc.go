// Package services defines the [Service] interface for the YouTube Data API v3 and implements it in [YouTubeService].
//
// # Service Interface
//
// Service is a typed façade: each method maps to exactly one upstream call and returns
// the upstream resource unchanged. Resolution, pagination, ordering and projection live
// in the tasks package, which depends only on this interface.
//
// # YouTube Data API Implementation
//
// [YouTubeService] sends GET requests to {base_url}/youtube/v3/{resource}. Authentication
// is either an API key appended as ?key= or an OAuth2 access token sent through an
// [oauth2.Transport] when no key is configured.
//
// Timeouts are set on the HTTP client (youtube.timeout_seconds); no retries are made.
//
// # ytlink Server Client
//
// [APIService] talks to a running ytlink server. It backs the CLI `api` and `sync`
// commands: raw Get/Post calls plus typed SyncUpload and SyncDownload.
//
// # Error Handling
//
// Services use sentinel errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure, non-2xx status, or undecodable body
//   - [shared.ErrInvalidArgument] : more than 50 IDs passed to Videos
//   - [shared.ErrMissingCredentials] : neither api_key nor access_token configured
//   - [shared.ErrNothingStored] : sync slot empty (server returned 404)
//
// Upstream error envelopes are decoded and summarized by status (401 key, 403 quota or
// access, 404, 429, 5xx).
package services
