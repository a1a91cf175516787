package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/service"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/httputil"
)

// RecommendHandler handles HTTP requests for product recommendations.
type RecommendHandler struct {
	service *service.RecommendService
	logger  *slog.Logger
}

// NewRecommendHandler creates a new recommendation HTTP handler.
func NewRecommendHandler(svc *service.RecommendService, logger *slog.Logger) *RecommendHandler {
	return &RecommendHandler{
		service: svc,
		logger:  logger,
	}
}

// Recommend handles GET /api/v1/products/{id}/recommendations
// @Summary Related products for a seed product
// @Description Returns products related to the given product, mixed from category, brand, sibling, recent-affinity and featured sources
// @Tags catalog
// @Produce json
// @Param id path string true "Seed product ID"
// @Param limit query int false "Maximum number of recommendations" default(12)
// @Param recent_brands query string false "Comma-separated brands the caller browsed recently"
// @Param recent_categories query string false "Comma-separated categories the caller browsed recently"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id}/recommendations [get]
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	if id == "" {
		invalidParam(w, "product id is required")
		return
	}

	opts := service.RecommendOptions{Limit: service.DefaultRecommendLimit}
	query := r.URL.Query()

	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			invalidParam(w, "limit must be a valid positive integer")
			return
		}
		opts.Limit = n
	}

	opts.RecentBrands = splitListParam(query.Get("recent_brands"))
	opts.RecentCategories = splitListParam(query.Get("recent_categories"))

	recommendations, err := h.service.Recommend(r.Context(), id, opts)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: recommendations})
}

// splitListParam splits a comma-separated query value, dropping empty parts.
func splitListParam(v string) []string {
	if v == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
