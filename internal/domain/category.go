package domain

import "time"

// Category represents a node in the category hierarchy.
//
// ParentID holds the parent category's slug, not its row id. The hierarchy is
// keyed and linked by slug throughout, while products reference categories by
// display name. Both keys are kept deliberately; see CategoryIndex.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parent_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
