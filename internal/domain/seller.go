package domain

import "time"

// Seller represents a marketplace seller account.
type Seller struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Country    string    `json:"country,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// VendorMetrics aggregates a seller's business figures for the dashboard.
// Every field is zero-valued when the underlying data cannot be read; the
// aggregation path never fails.
type VendorMetrics struct {
	SoldCount     int       `json:"sold_count"`
	TotalRevenue  int64     `json:"total_revenue"`
	AverageRating float64   `json:"average_rating"`
	TotalViews    int64     `json:"total_views"`
	ActiveSince   time.Time `json:"active_since"`
	TotalProducts int       `json:"total_products"`
}
