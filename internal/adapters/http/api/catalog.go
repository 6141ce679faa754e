// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/pkg/logger"
)

// CatalogDependencies defines the interface for catalog operations.
type CatalogDependencies interface {
	Catalog(ctx context.Context) (analytics.Catalog, error)
	Summary(ctx context.Context) (analytics.Summary, error)
}

// CatalogHandler handles catalog and summary requests.
type CatalogHandler struct {
	deps   CatalogDependencies
	logger logger.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{deps: deps, logger: log}
}

// HandleCatalog handles GET /v1/catalog requests.
func (h *CatalogHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.deps.Catalog(r.Context())
	writeResult(w, r, h.logger, "api.catalog", c, err)
}

// HandleSummary handles GET /v1/summary requests.
func (h *CatalogHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.deps.Summary(r.Context())
	writeResult(w, r, h.logger, "api.summary", s, err)
}
