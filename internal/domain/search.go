package domain

// Sort options for catalog search results.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortViews     = "views"
	SortRating    = "rating"
)

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{SortNewest, SortPriceAsc, SortPriceDesc, SortViews, SortRating}
}

// IsValidSort checks whether the given sort string is a valid sort option.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// SearchFilters is the request-scoped union of all catalog filter dimensions.
// Zero values mean "not set". The HTTP layer owns string-to-type coercion;
// the engine consumes the typed form only.
type SearchFilters struct {
	Query            string              `json:"query,omitempty"`
	Category         string              `json:"category,omitempty"`
	Brand            string              `json:"brand,omitempty"`
	Condition        string              `json:"condition,omitempty"`
	Location         string              `json:"location,omitempty"`
	SellerID         string              `json:"seller_id,omitempty"`
	MinPrice         *int64              `json:"min_price,omitempty"`
	MaxPrice         *int64              `json:"max_price,omitempty"`
	DiscountMin      *int                `json:"discount_min,omitempty"`
	CreatedSinceDays int                 `json:"created_since_days,omitempty"`
	FreeShipping     bool                `json:"free_shipping,omitempty"`
	ETAMaxDays       *int                `json:"eta_max_days,omitempty"`
	Attributes       map[string][]string `json:"attributes,omitempty"`
	VerifiedSeller   bool                `json:"verified_seller,omitempty"`
	RatingMin        *float64            `json:"rating_min,omitempty"`
	SortBy           string              `json:"sort_by,omitempty"`
}
