// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mkarami/lottostats/internal/domain/model"
	"github.com/mkarami/lottostats/internal/domain/stats"
	"github.com/mkarami/lottostats/internal/domain/verify"
)

// Result mirrors the statistics payload returned per game.
type Result = stats.Result

// Report mirrors the consistency diagnostics returned per game.
type Report = verify.Report

// IngestOutcome summarizes what happened to a batch of submitted draws.
type IngestOutcome = model.IngestOutcome

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// IngestDraws pushes draw records for async processing.
	IngestDraws(ctx context.Context, game string, draws []model.RawDraw) (IngestOutcome, error)

	// Statistics returns the latest assembled result for a game.
	Statistics(ctx context.Context, game string) (Result, error)

	// Diagnostics returns the consistency report for a game's latest tally.
	Diagnostics(ctx context.Context, game string) (Report, error)

	// Refresh triggers a scrape-and-recompute run and returns its ID.
	Refresh(ctx context.Context) (string, error)

	// GetStats exposes operational counters for the status endpoint.
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statusHandler      *StatusHandler
	statisticsHandler  *StatisticsHandler
	diagnosticsHandler *DiagnosticsHandler
	drawsHandler       *DrawsHandler
	refreshHandler     *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statusHandler:      NewStatusHandler(deps),
		statisticsHandler:  NewStatisticsHandler(deps),
		diagnosticsHandler: NewDiagnosticsHandler(deps),
		drawsHandler:       NewDrawsHandler(deps),
		refreshHandler:     NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleStatus, "status"))
	mux.HandleFunc("/statistics/", MetricsMiddleware(s.statisticsHandler.HandleGetStatistics, "statistics"))
	mux.HandleFunc("/diagnostics/", MetricsMiddleware(s.diagnosticsHandler.HandleGetDiagnostics, "diagnostics"))
	mux.HandleFunc("/draws", MetricsMiddleware(s.drawsHandler.HandlePostDraws, "draws"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
}

// drawsRequest is the schema for POST /draws.
type drawsRequest struct {
	Game  string          `json:"game"`
	Draws []model.RawDraw `json:"draws"`
}

func (d drawsRequest) validate() error {
	if strings.TrimSpace(d.Game) == "" {
		return errors.New("missing game")
	}
	if _, ok := model.VariantByName(d.Game); !ok {
		return errors.New("unknown game: " + d.Game)
	}
	if len(d.Draws) == 0 {
		return errors.New("missing draws")
	}
	return nil
}

type ackResponse struct {
	Status string `json:"status"`
	IngestOutcome
}

type refreshResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// gamePathParam extracts the game slug after the given route prefix.
func gamePathParam(r *http.Request, prefix string) (string, bool) {
	game := strings.TrimPrefix(r.URL.Path, prefix)
	if game == "" || strings.Contains(game, "/") {
		return "", false
	}
	return game, true
}

// The API translates upstream conditions to status codes by message rather
// than sentinel identity to avoid tight coupling with the producing package.

func isUnknownGame(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unknown game")
}

func isNotReady(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not computed")
}

func isBackpressure(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "backpressure")
}
