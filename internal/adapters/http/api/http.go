// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	MedalDependencies
	TrendDependencies
	AthleteDependencies
	CatalogDependencies
}

// Server wires HTTP routes for the query API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	medalHandler   *MedalHandler
	trendHandler   *TrendHandler
	athleteHandler *AthleteHandler
	catalogHandler *CatalogHandler
	logger         logger.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.medalHandler = NewMedalHandler(deps, s.logger)
	s.trendHandler = NewTrendHandler(deps, s.logger)
	s.athleteHandler = NewAthleteHandler(deps, s.logger)
	s.catalogHandler = NewCatalogHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /v1/catalog", "catalog", s.catalogHandler.HandleCatalog)
	route("GET /v1/summary", "summary", s.catalogHandler.HandleSummary)

	route("GET /v1/tally", "tally", s.medalHandler.HandleTally)
	route("GET /v1/medals/by-edition", "medals_by_edition", s.medalHandler.HandleMedalsByEdition)
	route("GET /v1/heatmaps/medals", "medals_heatmap", s.medalHandler.HandleMedalHeatmap)

	route("GET /v1/trends/{attribute}", "trends", s.trendHandler.HandleTrend)
	route("GET /v1/heatmaps/events", "events_heatmap", s.trendHandler.HandleEventsHeatmap)

	route("GET /v1/athletes/top", "top_athletes", s.athleteHandler.HandleTop)
	route("GET /v1/athletes/physique", "physique", s.athleteHandler.HandlePhysique)
	route("GET /v1/athletes/participation", "participation", s.athleteHandler.HandleParticipation)
	route("GET /v1/athletes/ages", "ages", s.athleteHandler.HandleAges)
	route("GET /v1/athletes/ages/gold", "gold_ages", s.athleteHandler.HandleGoldAges)
}

// columnar is implemented by every derived table.
type columnar interface {
	Columns() []string
}

// tableResponse carries a derived table with its documented column set.
type tableResponse struct {
	Columns []string `json:"columns"`
	Data    any      `json:"data"`
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

// writeResult writes a query result, or maps its error to a status code.
func writeResult[T columnar](w http.ResponseWriter, r *http.Request, log logger.Logger, op string, v T, err error) {
	if err != nil {
		status, code := classify(err)
		if status >= http.StatusInternalServerError {
			log.Error(r.Context(), "query failed",
				logger.String("op", op),
				logger.String("requestId", RequestID(r.Context())),
				logger.Error(err),
			)
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{Columns: v.Columns(), Data: v})
}

// classify maps domain errors to HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidEdition),
		errors.Is(err, analytics.ErrUnknownAttribute),
		errors.Is(err, service.ErrMissingParameter):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
