package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
)

// CompileFilters lowers request-level search filters into a store-ready
// product query. Only listable inventory is ever searchable, so the compiled
// status is pinned to active regardless of input.
//
// Verified-seller and minimum-rating filters are not compiled; they are
// applied to the fetched page after the query runs.
func CompileFilters(f domain.SearchFilters, idx *domain.CategoryIndex) repository.ProductQuery {
	q := repository.ProductQuery{
		Status:      domain.ProductStatusActive,
		Text:        f.Query,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
		DiscountMin: f.DiscountMin,
		SortBy:      f.SortBy,
	}

	// A category filter matches the whole subtree. Unknown keys fall through
	// as a literal name so the query still narrows instead of widening.
	if f.Category != "" {
		q.CategoryNames = idx.DescendantNames(f.Category)
	}

	if f.Brand != "" {
		brand := f.Brand
		q.Brand = &brand
	}

	if f.Condition != "" {
		condition := f.Condition
		q.Condition = &condition
	}

	if f.Location != "" {
		location := f.Location
		q.Location = &location
	}

	// Seller ids are UUIDs in practice; normalize when parseable, otherwise
	// keep the raw value for exact equality.
	if f.SellerID != "" {
		sellerID := f.SellerID
		if id, err := uuid.Parse(sellerID); err == nil {
			sellerID = id.String()
		}
		q.SellerID = &sellerID
	}

	if f.CreatedSinceDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -f.CreatedSinceDays)
		q.CreatedAfter = &cutoff
	}

	// Both shipping constraints share one sub-match over the option set.
	if f.FreeShipping || f.ETAMaxDays != nil {
		q.Shipping = &repository.ShippingQuery{
			FreeOnly:   f.FreeShipping,
			MaxETADays: f.ETAMaxDays,
		}
	}

	if len(f.Attributes) > 0 {
		q.Attributes = f.Attributes
	}

	return q
}
