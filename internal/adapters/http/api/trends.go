// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/pkg/logger"
)

// TrendDependencies defines the interface for per-edition trend operations.
type TrendDependencies interface {
	OverTime(ctx context.Context, attribute, label string) (analytics.EditionCounts, error)
	EventsHeatmap(ctx context.Context) (analytics.Matrix, error)
}

// TrendHandler handles trend requests.
type TrendHandler struct {
	deps   TrendDependencies
	logger logger.Logger
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(deps TrendDependencies, log logger.Logger) *TrendHandler {
	return &TrendHandler{deps: deps, logger: log}
}

// HandleTrend handles GET /v1/trends/{attribute}?label= requests.
func (h *TrendHandler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	counts, err := h.deps.OverTime(r.Context(), r.PathValue("attribute"), r.URL.Query().Get("label"))
	writeResult(w, r, h.logger, "api.trend", counts, err)
}

// HandleEventsHeatmap handles GET /v1/heatmaps/events requests.
func (h *TrendHandler) HandleEventsHeatmap(w http.ResponseWriter, r *http.Request) {
	m, err := h.deps.EventsHeatmap(r.Context())
	writeResult(w, r, h.logger, "api.events_heatmap", m, err)
}
