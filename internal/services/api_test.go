package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/ytlink/internal/shared"
)

// roundTripFunc adapts a function to [http.RoundTripper].
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func failingTransport(err error) http.RoundTripper {
	return roundTripFunc(func(*http.Request) (*http.Response, error) { return nil, err })
}

// failingBody fails every Read.
type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("read failed") }
func (failingBody) Close() error             { return nil }

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/", customClient)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Defaults", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.baseURL != defaultServerURL {
				t.Errorf("expected default baseURL %s, got %s", defaultServerURL, srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/healthz" {
					t.Errorf("expected path '/healthz', got %s", r.URL.Path)
				}
				w.Header().Set("X-Request-ID", "abc")
				w.Write([]byte(`{"status":"ok"}`))
			}))
			defer server.Close()

			resp, err := NewAPIService(server.URL, nil).Get(context.Background(), "/healthz")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() || !resp.IsJSON {
				t.Errorf("expected OK JSON response, got %d json=%v", resp.StatusCode, resp.IsJSON)
			}
			if m, _ := resp.JSONData.(map[string]any); m["status"] != "ok" {
				t.Errorf("expected status ok, got %v", resp.JSONData)
			}
			if resp.Headers.Get("X-Request-ID") != "abc" {
				t.Error("expected headers to be preserved")
			}
		})

		t.Run("Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			resp, err := NewAPIService(server.URL, nil).Get(context.Background(), "/")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON || resp.JSONData != nil {
				t.Error("expected response not to be JSON")
			}
			if resp.ErrorMessage() != "plain text response" {
				t.Errorf("expected raw body as message, got %q", resp.ErrorMessage())
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			_, err := NewAPIService("http://example.com", nil).Get(context.Background(), "/test\x00invalid")
			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{Transport: failingTransport(errors.New("connection failed"))}

			_, err := NewAPIService("http://example.com", client).Get(context.Background(), "/test")
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
					return &http.Response{StatusCode: http.StatusOK, Body: failingBody{}, Header: http.Header{}}, nil
				}),
			}

			_, err := NewAPIService("http://example.com", client).Get(context.Background(), "/test")
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST method, got %s", r.Method)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"k":"v"}` {
				t.Errorf("unexpected body %s", body)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		resp, err := NewAPIService(server.URL, nil).Post(context.Background(), "/x", []byte(`{"k":"v"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}
	})

	t.Run("Sync", func(t *testing.T) {
		t.Run("Upload Wraps Data", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/sync-upload" {
					t.Errorf("expected sync-upload path, got %s", r.URL.Path)
				}
				var body map[string]json.RawMessage
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				if string(body["data"]) != `{"a":1}` {
					t.Errorf("expected data {\"a\":1}, got %s", body["data"])
				}
				w.Write([]byte(`{"message":"Data uploaded successfully"}`))
			}))
			defer server.Close()

			msg, err := NewAPIService(server.URL, nil).SyncUpload(context.Background(), json.RawMessage(`{"a":1}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if msg != "Data uploaded successfully" {
				t.Errorf("unexpected message %q", msg)
			}
		})

		t.Run("Upload Rejects Invalid JSON", func(t *testing.T) {
			_, err := NewAPIService("http://example.com", nil).SyncUpload(context.Background(), json.RawMessage(`{`))
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Download Returns Data", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{"b":2}}`))
			}))
			defer server.Close()

			data, err := NewAPIService(server.URL, nil).SyncDownload(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if string(data) != `{"b":2}` {
				t.Errorf("expected {\"b\":2}, got %s", data)
			}
		})

		t.Run("Status Errors", func(t *testing.T) {
			tests := []struct {
				name   string
				status int
				want   error
			}{
				{"not found", http.StatusNotFound, shared.ErrNothingStored},
				{"bad request", http.StatusBadRequest, shared.ErrInvalidInput},
				{"server error", http.StatusInternalServerError, shared.ErrAPIRequest},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						w.WriteHeader(tt.status)
						w.Write([]byte(`{"error":"boom"}`))
					}))
					defer server.Close()

					_, err := NewAPIService(server.URL, nil).SyncDownload(context.Background())
					if !errors.Is(err, tt.want) {
						t.Errorf("expected %v, got %v", tt.want, err)
					}
					if err != nil && !strings.Contains(err.Error(), "boom") {
						t.Errorf("expected server message in error, got %v", err)
					}
				})
			}
		})

		t.Run("Unreachable Server", func(t *testing.T) {
			client := &http.Client{Transport: failingTransport(errors.New("connection refused"))}

			_, err := NewAPIService("http://example.com", client).SyncDownload(context.Background())
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})
}
