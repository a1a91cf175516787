package domain

import "time"

// Product status constants. Search only ever surfaces active products.
const (
	ProductStatusActive    = "active"
	ProductStatusSold      = "sold"
	ProductStatusSuspended = "suspended"
)

// Product condition constants.
const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)

// ShippingOption describes one way a product can be delivered.
type ShippingOption struct {
	Method        string `json:"method"`
	Cost          int64  `json:"cost"`
	EstimatedDays int    `json:"estimated_days"`
}

// Product represents a marketplace listing.
//
// Category holds the category's display name, not an id; products keep that
// name even if the category record is later removed. Rating is derived from
// reviews (mean, or 0 with none) and is only ever written by the rating
// recompute path.
type Product struct {
	ID              string           `json:"id"`
	SellerID        string           `json:"seller_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Price           int64            `json:"price"`
	Currency        string           `json:"currency"`
	Category        string           `json:"category"`
	Brand           string           `json:"brand,omitempty"`
	Condition       string           `json:"condition"`
	Status          string           `json:"status"`
	Location        string           `json:"location,omitempty"`
	Quantity        int              `json:"quantity"`
	Views           int64            `json:"views"`
	Rating          float64          `json:"rating"`
	Featured        bool             `json:"featured"`
	Tags            []string         `json:"tags,omitempty"`
	Attributes      map[string]any   `json:"attributes,omitempty"`
	ShippingOptions []ShippingOption `json:"shipping_options,omitempty"`
	DiscountPercent int              `json:"discount_percent"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ValidStatuses returns the set of valid product statuses.
func ValidStatuses() []string {
	return []string{ProductStatusActive, ProductStatusSold, ProductStatusSuspended}
}

// IsValidStatus checks whether the given status string is a valid product status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ValidConditions returns the set of valid product conditions.
func ValidConditions() []string {
	return []string{ConditionNew, ConditionUsed, ConditionRefurbished}
}

// IsValidCondition checks whether the given condition string is valid.
func IsValidCondition(condition string) bool {
	for _, c := range ValidConditions() {
		if c == condition {
			return true
		}
	}
	return false
}
