package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/repositories"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
)

const maxSyncBody = 10 << 20

// ChannelHandler serves channel resolution, playlist listing, and playlist video pages.
type ChannelHandler struct {
	resolver   *tasks.ChannelResolver
	lister     *tasks.PlaylistLister
	aggregator *tasks.PlaylistVideoAggregator
	logger     *log.Logger
	mux        *http.ServeMux
}

// NewChannelHandler creates a [ChannelHandler] over svc.
func NewChannelHandler(svc services.Service, logger *log.Logger) *ChannelHandler {
	h := &ChannelHandler{
		resolver:   tasks.NewChannelResolver(svc, logger),
		lister:     tasks.NewPlaylistLister(svc),
		aggregator: tasks.NewPlaylistVideoAggregator(svc),
		logger:     logger,
		mux:        http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /api/find-channel", h.findChannel)
	h.mux.HandleFunc("GET /api/channel-playlists", h.channelPlaylists)
	h.mux.HandleFunc("GET /api/playlist/{playlistId}", h.playlistVideos)
	return h
}

func (h *ChannelHandler) Routes() []string {
	return []string{
		"GET /api/find-channel",
		"GET /api/channel-playlists",
		"GET /api/playlist/{playlistId}",
	}
}

func (h *ChannelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type candidatesResponse struct {
	Multiple   bool                      `json:"multiple"`
	Candidates []models.ChannelCandidate `json:"candidates"`
}

type playlistsResponse struct {
	Playlists []models.PlaylistSummary `json:"playlists"`
}

func (h *ChannelHandler) findChannel(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(r.URL.Query().Get("handle"))
	if handle == "" {
		writeError(w, http.StatusBadRequest, "Handle is required")
		return
	}

	res, err := h.resolver.Resolve(context.WithoutCancel(r.Context()), handle)
	if err != nil {
		h.fail(w, err, "Failed to search channel", "input", handle)
		return
	}

	if res.Ambiguous() {
		writeJSON(w, http.StatusOK, candidatesResponse{Multiple: true, Candidates: res.Candidates})
		return
	}
	writeJSON(w, http.StatusOK, res.Channel)
}

func (h *ChannelHandler) channelPlaylists(w http.ResponseWriter, r *http.Request) {
	channelID := strings.TrimSpace(r.URL.Query().Get("channelId"))
	if channelID == "" {
		writeError(w, http.StatusBadRequest, "Channel ID is required")
		return
	}

	playlists, err := h.lister.ListAll(context.WithoutCancel(r.Context()), channelID)
	if err != nil {
		h.fail(w, err, "Failed to fetch playlists", "channel", channelID)
		return
	}
	writeJSON(w, http.StatusOK, playlistsResponse{Playlists: playlists})
}

func (h *ChannelHandler) playlistVideos(w http.ResponseWriter, r *http.Request) {
	playlistID := r.PathValue("playlistId")
	cursor := r.URL.Query().Get("pageToken")

	page, err := h.aggregator.FetchPage(context.WithoutCancel(r.Context()), playlistID, cursor)
	if err != nil {
		h.fail(w, err, "Failed to fetch data from YouTube API.", "playlist", playlistID)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// fail writes the status for err. Upstream failures are logged and replaced with upstreamMsg.
func (h *ChannelHandler) fail(w http.ResponseWriter, err error, upstreamMsg string, kv ...any) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		h.logger.Error(upstreamMsg, append(kv, "error", err)...)
		writeError(w, status, upstreamMsg)
	case http.StatusNotFound:
		writeError(w, status, notFoundMessage(err))
	default:
		writeError(w, status, err.Error())
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrChannelNotFound):
		return "Channel not found"
	case errors.Is(err, shared.ErrPlaylistNotFound):
		return "Playlist not found"
	default:
		return "Not found"
	}
}

// SyncHandler stores and returns the shared sync document.
type SyncHandler struct {
	store  repositories.SyncStore
	logger *log.Logger
	mux    *http.ServeMux
}

// NewSyncHandler creates a [SyncHandler] backed by store.
func NewSyncHandler(store repositories.SyncStore, logger *log.Logger) *SyncHandler {
	h := &SyncHandler{store: store, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /api/sync-upload", h.upload)
	h.mux.HandleFunc("GET /api/sync-download", h.download)
	return h
}

func (h *SyncHandler) Routes() []string {
	return []string{"POST /api/sync-upload", "GET /api/sync-download"}
}

func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type syncRequest struct {
	Data json.RawMessage `json:"data"`
}

type syncResponse struct {
	Data json.RawMessage `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *SyncHandler) upload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSyncBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req syncRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}
	if len(req.Data) == 0 || string(req.Data) == "null" {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	if err := h.store.Store(context.WithoutCancel(r.Context()), req.Data); err != nil {
		if statusFor(err) == http.StatusBadRequest {
			writeError(w, http.StatusBadRequest, "data must be valid JSON")
			return
		}
		h.logger.Error("failed to store sync data", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store data")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Data stored"})
}

func (h *SyncHandler) download(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Retrieve(context.WithoutCancel(r.Context()))
	if errors.Is(err, shared.ErrNothingStored) {
		writeError(w, http.StatusNotFound, "No data stored")
		return
	}
	if err != nil {
		h.logger.Error("failed to load sync data", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{Data: data})
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
