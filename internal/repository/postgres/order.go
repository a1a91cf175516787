package postgres

import (
	"context"
	"fmt"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/database"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL. The
// catalog engine only reads order aggregates; order lifecycle lives elsewhere.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// StatsBySeller sums quantity and total price over the seller's completed
// orders. An order matches through the top-level seller reference or through
// any line item's vendor reference; the single EXISTS keeps an order that
// matches both ways counted once. Sums are order-granular: a multi-vendor
// order contributes its full quantity and total price.
func (r *OrderRepository) StatsBySeller(ctx context.Context, sellerID string) (repository.OrderStats, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE status IN ($1, $2)
		  AND payment_status = $3
		  AND (seller_id = $4 OR EXISTS (
		      SELECT 1 FROM order_items
		      WHERE order_items.order_id = orders.id AND order_items.vendor_id = $4
		  ))`

	var stats repository.OrderStats
	err := r.pool.QueryRow(ctx, query,
		domain.OrderStatusDelivered,
		domain.OrderStatusShipped,
		domain.PaymentStatusCompleted,
		sellerID,
	).Scan(&stats.SoldCount, &stats.TotalRevenue)
	if err != nil {
		return repository.OrderStats{}, fmt.Errorf("seller order stats: %w", err)
	}

	return stats, nil
}
