// API service for making raw HTTP requests to a running ytlink server
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/ytlink/internal/shared"
)

const defaultServerURL = "http://localhost:3000"

// APIService provides raw and typed access to the HTTP surface of a ytlink server.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a new client for the ytlink server at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultServerURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the response has a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorMessage returns the "error" field of a JSON error body, or the raw body.
func (r *APIResponse) ErrorMessage() string {
	if m, ok := r.JSONData.(map[string]any); ok {
		if msg, ok := m["error"].(string); ok {
			return msg
		}
	}
	return strings.TrimSpace(string(r.Body))
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

func (a *APIService) do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// SyncUpload stores data in the server's sync slot, replacing any previous value.
//
// data must be valid JSON; it is sent as {"data": data}.
func (a *APIService) SyncUpload(ctx context.Context, data json.RawMessage) (string, error) {
	if !json.Valid(data) {
		return "", fmt.Errorf("%w: sync data must be valid JSON", shared.ErrInvalidInput)
	}

	payload, err := json.Marshal(map[string]json.RawMessage{"data": data})
	if err != nil {
		return "", fmt.Errorf("failed to encode sync payload: %w", err)
	}

	resp, err := a.Post(ctx, "/api/sync-upload", payload)
	if err != nil {
		return "", errors.Join(shared.ErrServiceUnavailable, err)
	}
	if !resp.OK() {
		return "", statusError(resp)
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode sync-upload response: %w", shared.ErrAPIRequest, err)
	}
	return result.Message, nil
}

// SyncDownload returns the value in the server's sync slot.
//
// Returns [shared.ErrNothingStored] when the slot is empty.
func (a *APIService) SyncDownload(ctx context.Context) (json.RawMessage, error) {
	resp, err := a.Get(ctx, "/api/sync-download")
	if err != nil {
		return nil, errors.Join(shared.ErrServiceUnavailable, err)
	}
	if !resp.OK() {
		return nil, statusError(resp)
	}

	var result struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode sync-download response: %w", shared.ErrAPIRequest, err)
	}
	return result.Data, nil
}

// statusError maps a non-2xx sync response back to a sentinel error.
func statusError(resp *APIResponse) error {
	msg := resp.ErrorMessage()
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNothingStored, msg)
	default:
		return fmt.Errorf("%w: server returned %d: %s", shared.ErrAPIRequest, resp.StatusCode, msg)
	}
}
