// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// StatisticsDependencies defines the interface for statistics reads.
type StatisticsDependencies interface {
	Statistics(ctx context.Context, game string) (Result, error)
}

// StatisticsHandler handles statistics requests.
type StatisticsHandler struct {
	deps StatisticsDependencies
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(deps StatisticsDependencies) *StatisticsHandler {
	return &StatisticsHandler{deps: deps}
}

// HandleGetStatistics handles GET /statistics/{game} requests.
func (h *StatisticsHandler) HandleGetStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	game, ok := gamePathParam(r, "/statistics/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	result, err := h.deps.Statistics(r.Context(), game)
	if err != nil {
		switch {
		case isUnknownGame(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		case isNotReady(err):
			writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}
