// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// DiagnosticsDependencies defines the interface for diagnostics reads.
type DiagnosticsDependencies interface {
	Diagnostics(ctx context.Context, game string) (Report, error)
}

// DiagnosticsHandler handles consistency diagnostics requests.
type DiagnosticsHandler struct {
	deps DiagnosticsDependencies
}

// NewDiagnosticsHandler creates a new diagnostics handler.
func NewDiagnosticsHandler(deps DiagnosticsDependencies) *DiagnosticsHandler {
	return &DiagnosticsHandler{deps: deps}
}

// HandleGetDiagnostics handles GET /diagnostics/{game} requests.
func (h *DiagnosticsHandler) HandleGetDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	game, ok := gamePathParam(r, "/diagnostics/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	report, err := h.deps.Diagnostics(r.Context(), game)
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
	writeJSON(w, http.StatusOK, report)
}
