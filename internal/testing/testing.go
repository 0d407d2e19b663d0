// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytlink/internal/services"
)

// MockService is an in-memory [services.Service] backed by fixture maps.
//
// Calls are counted per method so tests can assert which upstream operations ran.
// Set the Err fields to force failures.
type MockService struct {
	Channels     map[string]*services.ChannelResource
	Handles      map[string]string
	Search       map[string][]services.SearchResult
	PlaylistData map[string][]services.PlaylistResource
	Items        map[string][]services.PlaylistItemResource
	VideoData    map[string]services.VideoResource
	PageSize     int
	TotalCount   map[string]int

	// ShuffleVideos reverses videos.list output to simulate unspecified batch order.
	ShuffleVideos bool

	ChannelErr error
	HandleErr  error
	SearchErr  error
	ListErr    error
	ItemsErr   error
	VideosErr  error

	mu           sync.Mutex
	calls        map[string]int
	SearchQuery  []string
	VideoBatches [][]string
	PageTokens   []string
}

// NewMockService creates an empty mock with 50-entry pages.
func NewMockService() *MockService {
	return &MockService{
		Channels:     map[string]*services.ChannelResource{},
		Handles:      map[string]string{},
		Search:       map[string][]services.SearchResult{},
		PlaylistData: map[string][]services.PlaylistResource{},
		Items:        map[string][]services.PlaylistItemResource{},
		VideoData:    map[string]services.VideoResource{},
		TotalCount:   map[string]int{},
		PageSize:     services.MaxResultsPerPage,
		calls:        map[string]int{},
	}
}

func (m *MockService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockService) ChannelByID(ctx context.Context, channelID string) (*services.ChannelResource, error) {
	m.record("ChannelByID")
	if m.ChannelErr != nil {
		return nil, m.ChannelErr
	}
	return m.Channels[channelID], nil
}

func (m *MockService) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	m.record("ChannelIDByHandle")
	if m.HandleErr != nil {
		return "", m.HandleErr
	}
	return m.Handles[handle], nil
}

func (m *MockService) SearchChannels(ctx context.Context, query string, maxResults int) ([]services.SearchResult, error) {
	m.record("SearchChannels")
	m.mu.Lock()
	m.SearchQuery = append(m.SearchQuery, query)
	m.mu.Unlock()
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	results := m.Search[query]
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func (m *MockService) Playlists(ctx context.Context, channelID, pageToken string) (*services.PlaylistPage, error) {
	m.record("Playlists")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	items, next, err := paginate(m.PlaylistData[channelID], pageToken, m.PageSize)
	if err != nil {
		return nil, err
	}
	return &services.PlaylistPage{
		Items:         items,
		NextPageToken: next,
		PageInfo:      services.PageInfo{TotalResults: len(m.PlaylistData[channelID]), ResultsPerPage: m.PageSize},
	}, nil
}

func (m *MockService) PlaylistByID(ctx context.Context, playlistID string) (*services.PlaylistResource, error) {
	m.record("PlaylistByID")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	for _, playlists := range m.PlaylistData {
		for i := range playlists {
			if playlists[i].ID == playlistID {
				p := playlists[i]
				return &p, nil
			}
		}
	}
	return nil, nil
}

func (m *MockService) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*services.PlaylistItemPage, error) {
	m.record("PlaylistItems")
	m.mu.Lock()
	m.PageTokens = append(m.PageTokens, pageToken)
	m.mu.Unlock()
	if m.ItemsErr != nil {
		return nil, m.ItemsErr
	}

	all := m.Items[playlistID]
	items, next, err := paginate(all, pageToken, m.PageSize)
	if err != nil {
		return nil, err
	}

	total, ok := m.TotalCount[playlistID]
	if !ok {
		total = len(all)
	}
	return &services.PlaylistItemPage{
		Items:         items,
		NextPageToken: next,
		PageInfo:      services.PageInfo{TotalResults: total, ResultsPerPage: m.PageSize},
	}, nil
}

func (m *MockService) Videos(ctx context.Context, videoIDs []string) ([]services.VideoResource, error) {
	m.record("Videos")
	m.mu.Lock()
	m.VideoBatches = append(m.VideoBatches, append([]string(nil), videoIDs...))
	m.mu.Unlock()
	if m.VideosErr != nil {
		return nil, m.VideosErr
	}
	if len(videoIDs) > services.MaxResultsPerPage {
		return nil, fmt.Errorf("mock: %d ids exceeds batch limit", len(videoIDs))
	}

	out := make([]services.VideoResource, 0, len(videoIDs))
	for _, id := range videoIDs {
		if v, ok := m.VideoData[id]; ok {
			out = append(out, v)
		}
	}
	if m.ShuffleVideos {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// paginate slices items into pages whose tokens are "page-N".
func paginate[T any](items []T, token string, size int) ([]T, string, error) {
	if size <= 0 {
		size = services.MaxResultsPerPage
	}
	start := 0
	if token != "" {
		var page int
		if _, err := fmt.Sscanf(token, "page-%d", &page); err != nil {
			return nil, "", fmt.Errorf("mock: bad page token %q", token)
		}
		start = page * size
	}
	if start >= len(items) {
		return []T{}, "", nil
	}

	end := min(start+size, len(items))
	next := ""
	if end < len(items) {
		next = fmt.Sprintf("page-%d", end/size)
	}
	return items[start:end], next, nil
}

// ChannelFixture builds a channels.list item.
func ChannelFixture(id, title, handle, videoCount string) *services.ChannelResource {
	c := &services.ChannelResource{ID: id}
	c.Snippet.Title = title
	c.Snippet.Description = title + " description"
	c.Snippet.CustomURL = handle
	c.Snippet.Thumbnails.Default = &services.Thumbnail{URL: "https://img.test/" + id + "/default.jpg"}
	c.Statistics.VideoCount = videoCount
	return c
}

// SearchFixture builds a channel search hit.
func SearchFixture(id, title string) services.SearchResult {
	var r services.SearchResult
	r.ID.Kind = "youtube#channel"
	r.ID.ChannelID = id
	r.Snippet.ChannelID = id
	r.Snippet.Title = title
	r.Snippet.Thumbnails.Default = &services.Thumbnail{URL: "https://img.test/" + id + ".jpg"}
	return r
}

// PlaylistFixture builds a playlists.list item with a medium thumbnail.
func PlaylistFixture(id, title string, itemCount int) services.PlaylistResource {
	var p services.PlaylistResource
	p.ID = id
	p.Snippet.Title = title
	p.Snippet.Thumbnails.Medium = &services.Thumbnail{URL: "https://img.test/" + id + "/mq.jpg"}
	p.ContentDetails.ItemCount = itemCount
	return p
}

// ItemFixture builds a playlist membership entry; an empty videoID makes a placeholder.
func ItemFixture(videoID string, position int) services.PlaylistItemResource {
	var it services.PlaylistItemResource
	it.ID = fmt.Sprintf("item-%d", position)
	it.Snippet.Position = position
	it.Snippet.ResourceID.Kind = "youtube#video"
	it.Snippet.ResourceID.VideoID = videoID
	it.ContentDetails.VideoID = videoID
	return it
}

// VideoFixture builds a videos.list item.
func VideoFixture(id, title, duration string) services.VideoResource {
	var v services.VideoResource
	v.ID = id
	v.Snippet.Title = title
	v.Snippet.PublishedAt = "2024-01-02T03:04:05Z"
	v.Snippet.Thumbnails.Medium = &services.Thumbnail{URL: "https://img.test/" + id + "/mq.jpg"}
	v.ContentDetails.Duration = duration
	return v
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
