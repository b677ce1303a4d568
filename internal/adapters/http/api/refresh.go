// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// RefreshDependencies defines the interface for triggering refresh runs.
type RefreshDependencies interface {
	Refresh(ctx context.Context) (string, error)
}

// RefreshHandler handles refresh trigger requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandlePostRefresh handles POST /refresh requests.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	runID, err := h.deps.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusAccepted, refreshResponse{Status: "started", RunID: runID})
}
