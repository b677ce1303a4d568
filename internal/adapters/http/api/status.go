// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// StatusProvider defines the interface for getting service status.
type StatusProvider interface {
	GetStats() map[string]interface{}
}

// StatusHandler handles service status requests.
type StatusHandler struct {
	provider StatusProvider
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(provider StatusProvider) *StatusHandler {
	return &StatusHandler{provider: provider}
}

// HandleStatus handles GET /status requests.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(h.provider.GetStats())
}
