package postgres

import (
	"context"
	"fmt"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/database"
)

// SellerRepository implements repository.SellerRepository using PostgreSQL.
type SellerRepository struct {
	pool database.DBTX
}

// NewSellerRepository creates a new PostgreSQL-backed seller repository.
func NewSellerRepository(pool database.DBTX) *SellerRepository {
	return &SellerRepository{pool: pool}
}

// GetByIDs returns the sellers for the given ids, keyed by id. Missing ids are
// absent from the map.
func (r *SellerRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Seller, error) {
	sellers := make(map[string]domain.Seller, len(ids))
	if len(ids) == 0 {
		return sellers, nil
	}

	query := `
		SELECT id, name, country, is_verified, created_at
		FROM sellers
		WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get sellers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.Country, &s.IsVerified, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seller row: %w", err)
		}
		sellers[s.ID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seller rows: %w", err)
	}

	return sellers, nil
}
