// YouTube Data API v3 [Service] implementation
//
// Requests authenticate with an API key (?key=) or, when only an access token is configured,
// with a bearer token supplied by an [oauth2.TokenSource].
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/ytlink/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultYTBaseURL = "https://www.googleapis.com"
	defaultTimeout   = 15 * time.Second
)

// HTTPClient is the subset of [http.Client] the service uses, allowing injection in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a [YouTubeService].
type Option func(*YouTubeService)

// WithBaseURL overrides the API host (useful for testing).
func WithBaseURL(baseURL string) Option {
	return func(y *YouTubeService) {
		if baseURL != "" {
			y.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithAPIKey authenticates requests with an API key.
func WithAPIKey(key string) Option {
	return func(y *YouTubeService) {
		y.apiKey = key
	}
}

// WithAccessToken authenticates requests with an OAuth2 bearer token.
//
// Ignored when a custom client is supplied through [WithHTTPClient].
func WithAccessToken(token string) Option {
	return func(y *YouTubeService) {
		y.accessToken = token
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(y *YouTubeService) {
		if d > 0 {
			y.timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(y *YouTubeService) {
		y.httpClient = client
	}
}

// YouTubeService implements [Service] over the YouTube Data API v3.
//
// It holds no per-request state and is safe for concurrent use.
type YouTubeService struct {
	baseURL     string
	apiKey      string
	accessToken string
	timeout     time.Duration
	httpClient  HTTPClient
}

// NewYouTubeService creates a new YouTube Data API service.
func NewYouTubeService(opts ...Option) *YouTubeService {
	y := &YouTubeService{
		baseURL: defaultYTBaseURL,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(y)
	}

	if y.httpClient == nil {
		y.httpClient = y.defaultClient()
	}

	return y
}

// NewYouTubeServiceFromConfig builds a service from the [shared.YouTubeConfig] section.
func NewYouTubeServiceFromConfig(cfg shared.YouTubeConfig) (*YouTubeService, error) {
	if cfg.APIKey == "" && cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: youtube api_key or access_token is required", shared.ErrMissingCredentials)
	}

	return NewYouTubeService(
		WithBaseURL(cfg.BaseURL),
		WithAPIKey(cfg.APIKey),
		WithAccessToken(cfg.AccessToken),
		WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
	), nil
}

func (y *YouTubeService) defaultClient() *http.Client {
	base := &http.Client{Timeout: y.timeout}
	if y.apiKey != "" || y.accessToken == "" {
		return base
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: y.accessToken}))
	client.Timeout = y.timeout
	return client
}

// apiError mirrors the Google API error envelope.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// doRequest performs a GET against /youtube/v3/{resource} and decodes the JSON body into result.
//
// Every failure is wrapped with [shared.ErrAPIRequest].
func (y *YouTubeService) doRequest(ctx context.Context, resource string, params url.Values, result any) error {
	if y.apiKey != "" {
		params.Set("key", y.apiKey)
	}

	apiURL := fmt.Sprintf("%s/youtube/v3/%s?%s", y.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", shared.ErrAPIRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s request failed: %w", shared.ErrAPIRequest, resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s response: %w", shared.ErrAPIRequest, resource, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleAPIError(resource, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", shared.ErrAPIRequest, resource, err)
	}

	return nil
}

func handleAPIError(resource string, statusCode int, body []byte) error {
	var envelope apiError
	reason, message := "", ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		message = envelope.Error.Message
		if len(envelope.Error.Errors) > 0 {
			reason = envelope.Error.Errors[0].Reason
		}
	}

	var summary string
	switch {
	case statusCode == http.StatusBadRequest:
		summary = "bad request"
	case statusCode == http.StatusUnauthorized:
		summary = "authentication failed - check youtube.api_key"
	case statusCode == http.StatusForbidden && (reason == "quotaExceeded" || reason == "dailyLimitExceeded"):
		summary = "daily quota exceeded"
	case statusCode == http.StatusForbidden:
		summary = "access denied"
	case statusCode == http.StatusNotFound:
		summary = "resource not found"
	case statusCode == http.StatusTooManyRequests:
		summary = "rate limit exceeded"
	case statusCode >= 500:
		summary = "server error"
	default:
		summary = "unexpected status"
	}

	err := fmt.Errorf("%w: youtube %s (status %d): %s", shared.ErrAPIRequest, resource, statusCode, summary)
	if message != "" {
		err = fmt.Errorf("%w: %s", err, message)
	}
	return err
}

// ChannelByID calls channels.list with id=channelID.
func (y *YouTubeService) ChannelByID(ctx context.Context, channelID string) (*ChannelResource, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", channelID)
	params.Set("maxResults", "1")

	var response struct {
		Items []ChannelResource `json:"items"`
	}
	if err := y.doRequest(ctx, "channels", params, &response); err != nil {
		return nil, err
	}

	if len(response.Items) == 0 {
		return nil, nil
	}
	return &response.Items[0], nil
}

// ChannelIDByHandle calls channels.list with forHandle=handle.
func (y *YouTubeService) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", handle)

	var response struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := y.doRequest(ctx, "channels", params, &response); err != nil {
		return "", err
	}

	if len(response.Items) == 0 {
		return "", nil
	}
	return response.Items[0].ID, nil
}

// SearchChannels calls search.list with type=channel.
func (y *YouTubeService) SearchChannels(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = MaxSearchResults
	}
	if maxResults > MaxResultsPerPage {
		maxResults = MaxResultsPerPage
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "channel")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var response struct {
		Items []SearchResult `json:"items"`
	}
	if err := y.doRequest(ctx, "search", params, &response); err != nil {
		return nil, err
	}

	if response.Items == nil {
		return []SearchResult{}, nil
	}
	return response.Items, nil
}

// Playlists calls playlists.list for a channel.
func (y *YouTubeService) Playlists(ctx context.Context, channelID, pageToken string) (*PlaylistPage, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("channelId", channelID)
	params.Set("maxResults", strconv.Itoa(MaxResultsPerPage))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var page PlaylistPage
	if err := y.doRequest(ctx, "playlists", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaylistByID calls playlists.list with id=playlistID.
func (y *YouTubeService) PlaylistByID(ctx context.Context, playlistID string) (*PlaylistResource, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", playlistID)

	var page PlaylistPage
	if err := y.doRequest(ctx, "playlists", params, &page); err != nil {
		return nil, err
	}

	if len(page.Items) == 0 {
		return nil, nil
	}
	return &page.Items[0], nil
}

// PlaylistItems calls playlistItems.list for a playlist.
func (y *YouTubeService) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*PlaylistItemPage, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", strconv.Itoa(MaxResultsPerPage))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var page PlaylistItemPage
	if err := y.doRequest(ctx, "playlistItems", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Videos calls videos.list for a batch of IDs.
func (y *YouTubeService) Videos(ctx context.Context, videoIDs []string) ([]VideoResource, error) {
	if len(videoIDs) == 0 {
		return []VideoResource{}, nil
	}
	if len(videoIDs) > MaxResultsPerPage {
		return nil, fmt.Errorf("%w: at most %d video IDs per request, got %d", shared.ErrInvalidArgument, MaxResultsPerPage, len(videoIDs))
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", strings.Join(videoIDs, ","))
	params.Set("maxResults", strconv.Itoa(MaxResultsPerPage))

	var response struct {
		Items []VideoResource `json:"items"`
	}
	if err := y.doRequest(ctx, "videos", params, &response); err != nil {
		return nil, err
	}

	if response.Items == nil {
		return []VideoResource{}, nil
	}
	return response.Items, nil
}
