// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/pkg/logger"
)

// AthleteDependencies defines the interface for athlete-level operations.
type AthleteDependencies interface {
	Suggester
	TopAthletes(ctx context.Context, sport, region string) (analytics.Leaderboard, error)
	PhysicalAttributes(ctx context.Context, sport string) (analytics.PhysicalSlice, error)
	Participation(ctx context.Context) (analytics.Participation, error)
	AgesByMedal(ctx context.Context) (analytics.AgeDistribution, error)
	GoldAgesBySport(ctx context.Context, sports []string) (analytics.AgeDistribution, error)
}

// AthleteHandler handles athlete requests.
type AthleteHandler struct {
	deps   AthleteDependencies
	logger logger.Logger
}

// NewAthleteHandler creates a new athlete handler.
func NewAthleteHandler(deps AthleteDependencies, log logger.Logger) *AthleteHandler {
	return &AthleteHandler{deps: deps, logger: log}
}

// HandleTop handles GET /v1/athletes/top?sport=&region= requests.
func (h *AthleteHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sport, region := q.Get("sport"), q.Get("region")
	suggest(w, r, h.deps, service.DimensionSport, "sport", sport)
	suggest(w, r, h.deps, service.DimensionRegion, "region", region)
	board, err := h.deps.TopAthletes(r.Context(), sport, region)
	writeResult(w, r, h.logger, "api.top_athletes", board, err)
}

// HandlePhysique handles GET /v1/athletes/physique?sport= requests.
func (h *AthleteHandler) HandlePhysique(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	suggest(w, r, h.deps, service.DimensionSport, "sport", sport)
	slice, err := h.deps.PhysicalAttributes(r.Context(), sport)
	writeResult(w, r, h.logger, "api.physique", slice, err)
}

// HandleParticipation handles GET /v1/athletes/participation requests.
func (h *AthleteHandler) HandleParticipation(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Participation(r.Context())
	writeResult(w, r, h.logger, "api.participation", p, err)
}

// HandleAges handles GET /v1/athletes/ages requests.
func (h *AthleteHandler) HandleAges(w http.ResponseWriter, r *http.Request) {
	ages, err := h.deps.AgesByMedal(r.Context())
	writeResult(w, r, h.logger, "api.ages", ages, err)
}

// HandleGoldAges handles GET /v1/athletes/ages/gold?sport=...&sport=...
// requests. Without sport parameters the configured sport list is used.
func (h *AthleteHandler) HandleGoldAges(w http.ResponseWriter, r *http.Request) {
	sports := r.URL.Query()["sport"]
	for _, s := range sports {
		suggest(w, r, h.deps, service.DimensionSport, "sport", s)
	}
	ages, err := h.deps.GoldAgesBySport(r.Context(), sports)
	writeResult(w, r, h.logger, "api.gold_ages", ages, err)
}
