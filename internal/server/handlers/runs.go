package handlers

import (
	"net/http"
	"strconv"

	"sentilytics/internal/domain/analysis"
	"sentilytics/pkg/logger"
)

const maxRunsLimit = 500

// RunHandler serves the analysis run history
type RunHandler struct {
	runs analysis.RunRecorder
	log  logger.Logger
}

// NewRunHandler creates a new run handler. runs may be nil.
func NewRunHandler(runs analysis.RunRecorder, log logger.Logger) *RunHandler {
	return &RunHandler{
		runs: runs,
		log:  log.WithComponent("RunHandler"),
	}
}

// ListRuns returns the most recent runs
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}

	if h.runs == nil {
		respondWithJSON(w, http.StatusOK, []analysis.Run{})
		return
	}

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		h.log.Error("Failed to list runs", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	respondWithJSON(w, http.StatusOK, runs)
}
