// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/pkg/logger"
)

// HeaderDidYouMean suggests the closest known value for an unknown filter,
// formatted as "param=value".
const HeaderDidYouMean = "X-Did-You-Mean"

// Suggester proposes a known value for a misspelt filter.
type Suggester interface {
	Suggest(ctx context.Context, dim service.Dimension, value string) (string, bool)
}

// MedalDependencies defines the interface for medal operations.
type MedalDependencies interface {
	Suggester
	MedalTally(ctx context.Context, edition, region string) (analytics.Tally, error)
	MedalsPerEdition(ctx context.Context, region string) (analytics.EditionCounts, error)
	CountryHeatmap(ctx context.Context, region string) (analytics.Matrix, error)
}

// MedalHandler handles medal standings requests.
type MedalHandler struct {
	deps   MedalDependencies
	logger logger.Logger
}

// NewMedalHandler creates a new medal handler.
func NewMedalHandler(deps MedalDependencies, log logger.Logger) *MedalHandler {
	return &MedalHandler{deps: deps, logger: log}
}

// HandleTally handles GET /v1/tally?edition=&region= requests.
func (h *MedalHandler) HandleTally(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	region := q.Get("region")
	suggest(w, r, h.deps, service.DimensionRegion, "region", region)
	tally, err := h.deps.MedalTally(r.Context(), q.Get("edition"), region)
	writeResult(w, r, h.logger, "api.tally", tally, err)
}

// HandleMedalsByEdition handles GET /v1/medals/by-edition?region= requests.
func (h *MedalHandler) HandleMedalsByEdition(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	suggest(w, r, h.deps, service.DimensionRegion, "region", region)
	counts, err := h.deps.MedalsPerEdition(r.Context(), region)
	writeResult(w, r, h.logger, "api.medals_by_edition", counts, err)
}

// HandleMedalHeatmap handles GET /v1/heatmaps/medals?region= requests.
func (h *MedalHandler) HandleMedalHeatmap(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	suggest(w, r, h.deps, service.DimensionRegion, "region", region)
	m, err := h.deps.CountryHeatmap(r.Context(), region)
	writeResult(w, r, h.logger, "api.medals_heatmap", m, err)
}

// suggest sets the did-you-mean header when value is not a known filter.
func suggest(w http.ResponseWriter, r *http.Request, s Suggester, dim service.Dimension, param, value string) {
	if value == "" {
		return
	}
	if hint, ok := s.Suggest(r.Context(), dim, value); ok {
		w.Header().Add(HeaderDidYouMean, param+"="+hint)
	}
}
