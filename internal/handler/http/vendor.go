package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/service"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/httputil"
)

// VendorHandler handles HTTP requests for vendor metrics.
type VendorHandler struct {
	service *service.VendorService
	logger  *slog.Logger
}

// NewVendorHandler creates a new vendor HTTP handler.
func NewVendorHandler(svc *service.VendorService, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{
		service: svc,
		logger:  logger,
	}
}

// Metrics handles GET /api/v1/vendors/{id}/metrics
// @Summary Vendor dashboard metrics
// @Description Returns the seller's aggregated figures. Unreadable sides report zeroes; this endpoint never fails on store errors.
// @Tags vendors
// @Produce json
// @Param id path string true "Seller ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/vendors/{id}/metrics [get]
func (h *VendorHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		invalidParam(w, "vendor id is required")
		return
	}

	metrics := h.service.Metrics(r.Context(), id)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: metrics})
}
