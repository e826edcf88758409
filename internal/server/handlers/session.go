// internal/server/handlers/session.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/ratelimit"
	"sentilytics/internal/service/listening"
	"sentilytics/pkg/logger"
)

// SessionHandler handles analysis session requests
type SessionHandler struct {
	sessions *listening.Manager
	limiter  ratelimit.Limiter
	log      logger.Logger
}

// NewSessionHandler creates a new session handler. A nil limiter disables
// analyze throttling.
func NewSessionHandler(sessions *listening.Manager, limiter ratelimit.Limiter, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		limiter:  limiter,
		log:      log.WithComponent("SessionHandler"),
	}
}

type createSessionRequest struct {
	ClientKey string `json:"clientKey"`
}

type queryRequest struct {
	Query *string `json:"query"`
}

type filtersRequest struct {
	Platform  *string `json:"platform"`
	DateRange *string `json:"dateRange"`
}

type autoRefreshRequest struct {
	Enabled *bool `json:"enabled"`
}

// CreateSession starts a session, restoring the client's last query
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s := h.sessions.Create(r.Context(), req.ClientKey)
	respondWithJSON(w, http.StatusCreated, s.View())
}

// GetSession returns the current view of a session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, s.View())
}

// DeleteSession ends a session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.Close(id); err != nil {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return
	}
	if h.limiter != nil {
		h.limiter.Forget(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetQuery replaces the query without fetching
func (h *SessionHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req queryRequest
	if err := decodeBody(r, &req); err != nil || req.Query == nil {
		respondWithError(w, http.StatusBadRequest, "Missing query")
		return
	}

	respondWithJSON(w, http.StatusOK, s.SetQuery(*req.Query))
}

// Analyze fetches the session query, optionally replacing it first
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req queryRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.limiter != nil && !h.limiter.Allow(s.ID()) {
		respondWithError(w, http.StatusTooManyRequests, "Too many analyze requests, try again shortly")
		return
	}

	if req.Query != nil {
		s.SetQuery(*req.Query)
	}

	view, err := s.Analyze(r.Context())
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, view)
	case errors.Is(err, analysis.ErrEmptyQuery):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analysis.ErrSuperseded):
		respondWithError(w, http.StatusConflict, "Superseded by a newer analyze request")
	default:
		h.log.Warn("Analyze failed", "session_id", s.ID(), "error", err)
		respondWithError(w, http.StatusBadGateway, view.Error)
	}
}

// SetFilters changes platform and/or date range without fetching
func (h *SessionHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req filtersRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cfg := s.View().Filter
	if req.Platform != nil {
		cfg.Platform = *req.Platform
		if cfg.Platform == "" {
			cfg.Platform = analysis.PlatformAll
		}
	}
	if req.DateRange != nil {
		dr, err := analysis.ParseDateRange(*req.DateRange)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		cfg.DateRange = dr
	}

	respondWithJSON(w, http.StatusOK, s.SetFilter(cfg))
}

// ResetFilters widens the filter to every platform and date
func (h *SessionHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, s.ResetFilters())
}

// SetAutoRefresh toggles periodic refreshing
func (h *SessionHandler) SetAutoRefresh(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req autoRefreshRequest
	if err := decodeBody(r, &req); err != nil || req.Enabled == nil {
		respondWithError(w, http.StatusBadRequest, "Missing enabled flag")
		return
	}

	view, err := s.SetAutoRefresh(*req.Enabled)
	if err != nil {
		if errors.Is(err, analysis.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, "Session not found")
			return
		}
		h.log.Error("Failed to toggle auto refresh", "session_id", s.ID(), "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to toggle auto refresh")
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*listening.Session, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing session ID")
		return nil, false
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}
