package domain

import "time"

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// OrderItem is one line of a multi-vendor order. Each line carries its own
// vendor reference, independent of the order's top-level seller.
type OrderItem struct {
	ProductID string `json:"product_id"`
	VendorID  string `json:"vendor_id"`
	UnitPrice int64  `json:"unit_price,omitempty"`
	Qty       int    `json:"qty,omitempty"`
}

// Order is consumed read-only by the catalog engine. Single-vendor orders set
// SellerID at the top level; multi-vendor orders reference vendors per line.
// An order can match a seller either way.
type Order struct {
	ID            string      `json:"id"`
	BuyerID       string      `json:"buyer_id"`
	SellerID      *string     `json:"seller_id,omitempty"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	TotalPrice    int64       `json:"total_price"`
	Quantity      int         `json:"quantity"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// IsCompleted reports whether the order counts toward sold/revenue metrics:
// fulfillment delivered or shipped, payment completed.
func (o *Order) IsCompleted() bool {
	return (o.Status == OrderStatusDelivered || o.Status == OrderStatusShipped) &&
		o.PaymentStatus == PaymentStatusCompleted
}
