package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/service"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/httputil"
)

// attrParamPrefix marks query parameters carrying attribute filters, e.g.
// attr_color=green,black.
const attrParamPrefix = "attr_"

// SearchHandler handles HTTP requests for catalog search.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

func invalidParam(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: message},
	})
}

// Search handles GET /api/v1/catalog/search
// @Summary Search the product catalog
// @Description Returns a paginated, filtered, sorted page of active products
// @Tags catalog
// @Produce json
// @Param q query string false "Full-text query over title, description and tags"
// @Param category query string false "Category slug or display name; matches the whole subtree"
// @Param brand query string false "Exact brand"
// @Param condition query string false "Product condition" Enums(new,used,refurbished)
// @Param location query string false "Exact location"
// @Param seller_id query string false "Seller ID"
// @Param min_price query int false "Minimum price in cents"
// @Param max_price query int false "Maximum price in cents"
// @Param discount_min query int false "Minimum discount percent"
// @Param created_since_days query int false "Only products created in the last N days"
// @Param free_shipping query bool false "Require a free shipping option"
// @Param eta_max_days query int false "Require a shipping option within N days"
// @Param verified_seller query bool false "Only products from verified sellers"
// @Param rating_min query number false "Minimum product rating"
// @Param sort_by query string false "Sort order" Enums(newest,price_asc,price_desc,views,rating)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/catalog/search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	perPage := 20

	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			invalidParam(w, "page must be a valid positive integer")
			return
		}
		page = n
	}
	if v := query.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			invalidParam(w, "per_page must be a valid integer between 1 and 100")
			return
		}
		perPage = n
	}

	filters := domain.SearchFilters{
		Query:    query.Get("q"),
		Category: query.Get("category"),
		Brand:    query.Get("brand"),
		Location: query.Get("location"),
		SellerID: query.Get("seller_id"),
		SortBy:   query.Get("sort_by"),
	}

	if v := query.Get("condition"); v != "" {
		if !domain.IsValidCondition(v) {
			invalidParam(w, "condition must be one of: new, used, refurbished")
			return
		}
		filters.Condition = v
	}

	if v := query.Get("min_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil || price < 0 {
			invalidParam(w, "min_price must be a valid non-negative number")
			return
		}
		filters.MinPrice = &price
	}
	if v := query.Get("max_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil || price < 0 {
			invalidParam(w, "max_price must be a valid non-negative number")
			return
		}
		filters.MaxPrice = &price
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		invalidParam(w, "min_price must not exceed max_price")
		return
	}

	if v := query.Get("discount_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			invalidParam(w, "discount_min must be a valid integer between 0 and 100")
			return
		}
		filters.DiscountMin = &n
	}

	if v := query.Get("created_since_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			invalidParam(w, "created_since_days must be a valid non-negative integer")
			return
		}
		filters.CreatedSinceDays = n
	}

	if v := query.Get("free_shipping"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalidParam(w, "free_shipping must be a boolean")
			return
		}
		filters.FreeShipping = b
	}

	if v := query.Get("eta_max_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			invalidParam(w, "eta_max_days must be a valid positive integer")
			return
		}
		filters.ETAMaxDays = &n
	}

	if v := query.Get("verified_seller"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalidParam(w, "verified_seller must be a boolean")
			return
		}
		filters.VerifiedSeller = b
	}

	if v := query.Get("rating_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			invalidParam(w, "rating_min must be a number between 0 and 5")
			return
		}
		filters.RatingMin = &f
	}

	if filters.SortBy != "" && !domain.IsValidSort(filters.SortBy) {
		invalidParam(w, "sort_by must be one of: "+strings.Join(domain.ValidSortOptions(), ", "))
		return
	}

	// attr_<key>=v1,v2 parameters accumulate into the attribute filter map.
	for key, values := range query {
		if !strings.HasPrefix(key, attrParamPrefix) {
			continue
		}
		attrKey := strings.TrimPrefix(key, attrParamPrefix)
		if attrKey == "" {
			continue
		}
		var attrValues []string
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					attrValues = append(attrValues, part)
				}
			}
		}
		if len(attrValues) > 0 {
			if filters.Attributes == nil {
				filters.Attributes = make(map[string][]string)
			}
			filters.Attributes[attrKey] = attrValues
		}
	}

	result, err := h.service.Search(r.Context(), filters, page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
