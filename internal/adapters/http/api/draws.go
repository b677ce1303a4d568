// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mkarami/lottostats/internal/domain/model"
)

// DrawsDependencies defines the interface for draw ingestion.
type DrawsDependencies interface {
	IngestDraws(ctx context.Context, game string, draws []model.RawDraw) (IngestOutcome, error)
}

// DrawsHandler handles draw submission requests.
type DrawsHandler struct {
	deps DrawsDependencies
}

// NewDrawsHandler creates a new draws handler.
func NewDrawsHandler(deps DrawsDependencies) *DrawsHandler {
	return &DrawsHandler{deps: deps}
}

// HandlePostDraws handles POST /draws requests.
func (h *DrawsHandler) HandlePostDraws(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_draws"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req drawsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	outcome, err := h.deps.IngestDraws(r.Context(), req.Game, req.Draws)
	if err != nil {
		if isBackpressure(err) {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", IngestOutcome: outcome})
}
