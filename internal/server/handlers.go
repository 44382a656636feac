package server

import (
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/aigentincubator/sales-ctonet/internal/facet"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// reservedParams are query keys that are never attribute filters.
var reservedParams = map[string]bool{
	"category":             true,
	"client_category":      true,
	"short_description":    true,
	"min_router_mbps":      true,
	"min_speedfusion_mbps": true,
	"min_users":            true,
	"sort":                 true,
	"embed":                true,
}

// handleCategories returns the catalog's category names in feed order.
//
//	@Summary		List categories
//	@Description	Returns the catalog's category names.
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {array} string
//	@Router			/categories [get]
func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Categories())
}

// handleProducts runs the full faceted evaluation for the request's query
// parameters and returns counts, chips, and ranked result cards.
//
//	@Summary		Evaluate filters
//	@Description	Filters the active category and returns facet counts plus ranked results.
//	@Tags			catalog
//	@Produce		json
//	@Param			category query string false "Active category"
//	@Param			sort query string false "Sort key (name_asc, router_desc, speedfusion_desc, users_desc)"
//	@Param			client_category query string false "Client tier for the surfaced price column"
//	@Success		200 {object} facet.Result
//	@Failure		500 {object} Problem
//	@Router			/products [get]
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := facet.Query{
		Category: params.Get("category"),
		Filters:  parseFilters(params),
		Numeric:  parseNumericFilters(params),
		SortKey:  params.Get("sort"),
		Tier:     models.ClientTier(params.Get("client_category")),
	}

	res, err := s.engine.Evaluate(q)
	if err != nil {
		s.logger.Error("evaluation failed", zap.Error(err))
		InternalError(w, "catalog unavailable", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// parseFilters collects attribute selections from the query string. Every
// non-reserved key is an attribute; the last supplied value wins, keeping
// single-value-per-attribute semantics.
func parseFilters(params url.Values) facet.Filters {
	filters := facet.Filters{}
	for key, vals := range params {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		if v := vals[len(vals)-1]; v != "" {
			filters.Set(key, v)
		}
	}
	return filters
}

// parseNumericFilters reads the minimum-threshold parameters. Absent, empty,
// malformed, or negative values leave the threshold unconstrained.
func parseNumericFilters(params url.Values) facet.NumericFilters {
	return facet.NumericFilters{
		MinRouterMbps:      parseMin(params.Get("min_router_mbps")),
		MinSpeedFusionMbps: parseMin(params.Get("min_speedfusion_mbps")),
		MinUsers:           parseMin(params.Get("min_users")),
	}
}

func parseMin(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
