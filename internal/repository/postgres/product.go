package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/database"
	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
)

// productColumns is the standard SELECT column list for products.
const productColumns = `id, seller_id, title, description, price, currency, category, brand,
	condition, status, location, quantity, views, rating, featured, tags,
	attributes, shipping_options, discount_percent, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		return nil, apperrors.ErrNotFound
	}

	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// buildConditions lowers a compiled ProductQuery into SQL conditions and args.
// Conditions are AND-ed; argIndex numbering starts at 1.
func buildConditions(q repository.ProductQuery) ([]string, []any) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	add := func(cond string, vals ...any) {
		conditions = append(conditions, cond)
		args = append(args, vals...)
		argIndex += len(vals)
	}

	// The compiler always pins status; guard anyway so a zero query can
	// never widen the result set.
	status := q.Status
	if status == "" {
		status = domain.ProductStatusActive
	}
	add(fmt.Sprintf("status = $%d", argIndex), status)

	if q.Text != "" {
		pattern := "%" + q.Text + "%"
		add(fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))",
			argIndex, argIndex, argIndex,
		), pattern)
	}

	if len(q.CategoryNames) > 0 {
		add(fmt.Sprintf("category = ANY($%d)", argIndex), q.CategoryNames)
	}

	if q.Brand != nil {
		add(fmt.Sprintf("brand = $%d", argIndex), *q.Brand)
	}

	if q.Condition != nil {
		add(fmt.Sprintf("condition = $%d", argIndex), *q.Condition)
	}

	if q.Location != nil {
		add(fmt.Sprintf("location = $%d", argIndex), *q.Location)
	}

	if q.SellerID != nil {
		add(fmt.Sprintf("seller_id = $%d", argIndex), *q.SellerID)
	}

	if q.MinPrice != nil {
		add(fmt.Sprintf("price >= $%d", argIndex), *q.MinPrice)
	}

	if q.MaxPrice != nil {
		add(fmt.Sprintf("price <= $%d", argIndex), *q.MaxPrice)
	}

	if q.DiscountMin != nil {
		add(fmt.Sprintf("discount_percent >= $%d", argIndex), *q.DiscountMin)
	}

	if q.CreatedAfter != nil {
		add(fmt.Sprintf("created_at >= $%d", argIndex), *q.CreatedAfter)
	}

	// One EXISTS over the option set covers both shipping constraints, so a
	// single option must satisfy all of them at once.
	if q.Shipping != nil {
		var optConds []string
		if q.Shipping.FreeOnly {
			optConds = append(optConds, "(opt->>'cost')::numeric = 0")
		}
		if q.Shipping.MaxETADays != nil {
			optConds = append(optConds, fmt.Sprintf("(opt->>'estimated_days')::int <= $%d", argIndex))
		}
		if len(optConds) > 0 {
			cond := fmt.Sprintf(
				"EXISTS (SELECT 1 FROM jsonb_array_elements(shipping_options) AS opt WHERE %s)",
				strings.Join(optConds, " AND "),
			)
			if q.Shipping.MaxETADays != nil {
				add(cond, *q.Shipping.MaxETADays)
			} else {
				conditions = append(conditions, cond)
			}
		}
	}

	// Attribute values can be stored as a scalar or as a set; match either.
	for _, key := range sortedKeys(q.Attributes) {
		vals := q.Attributes[key]
		add(fmt.Sprintf(
			"(attributes->>$%d = ANY($%d) OR attributes->$%d ?| $%d)",
			argIndex, argIndex+1, argIndex, argIndex+1,
		), key, vals)
	}

	return conditions, args
}

// sortedKeys returns map keys in a stable order so generated SQL is
// deterministic for tests.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// orderBy maps a sort option to an ORDER BY clause. The id tiebreaker keeps
// page boundaries stable.
func orderBy(sortBy string) string {
	switch sortBy {
	case domain.SortPriceAsc:
		return "ORDER BY price ASC, id DESC"
	case domain.SortPriceDesc:
		return "ORDER BY price DESC, id DESC"
	case domain.SortViews:
		return "ORDER BY views DESC, id DESC"
	case domain.SortRating:
		return "ORDER BY rating DESC, id DESC"
	default:
		return "ORDER BY created_at DESC, id DESC"
	}
}

// Query returns products matching the compiled query.
func (r *ProductRepository) Query(ctx context.Context, q repository.ProductQuery, limit, offset int) ([]domain.Product, error) {
	conditions, args := buildConditions(q)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		%s
		LIMIT $%d OFFSET $%d`,
		productColumns,
		strings.Join(conditions, " AND "),
		orderBy(q.SortBy),
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Count returns the number of products matching the compiled query.
func (r *ProductRepository) Count(ctx context.Context, q repository.ProductQuery) (int, error) {
	conditions, args := buildConditions(q)

	query := fmt.Sprintf(`SELECT count(*) FROM products WHERE %s`,
		strings.Join(conditions, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// ListByCategories returns active products in any of the named categories,
// ranked by views descending.
func (r *ProductRepository) ListByCategories(ctx context.Context, names []string, excludeID string, limit int) ([]domain.Product, error) {
	if len(names) == 0 {
		return []domain.Product{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE status = $1 AND category = ANY($2) AND id <> $3
		ORDER BY views DESC, id DESC
		LIMIT $4`, productColumns)

	rows, err := r.pool.Query(ctx, query, domain.ProductStatusActive, names, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list products by categories: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListByBrands returns active products of any of the given brands, ranked by
// views descending.
func (r *ProductRepository) ListByBrands(ctx context.Context, brands []string, excludeID string, limit int) ([]domain.Product, error) {
	if len(brands) == 0 {
		return []domain.Product{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE status = $1 AND brand = ANY($2) AND id <> $3
		ORDER BY views DESC, id DESC
		LIMIT $4`, productColumns)

	rows, err := r.pool.Query(ctx, query, domain.ProductStatusActive, brands, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list products by brands: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListFeatured returns active featured products, ranked by views descending.
func (r *ProductRepository) ListFeatured(ctx context.Context, excludeID string, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE status = $1 AND featured = TRUE AND id <> $2
		ORDER BY views DESC, id DESC
		LIMIT $3`, productColumns)

	rows, err := r.pool.Query(ctx, query, domain.ProductStatusActive, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// StatsBySeller aggregates the seller's product statistics. AverageRating is
// rounded to one decimal place in SQL.
func (r *ProductRepository) StatsBySeller(ctx context.Context, sellerID string) (repository.SellerProductStats, error) {
	query := `
		SELECT count(*),
		       COALESCE(SUM(views), 0),
		       COALESCE(ROUND(AVG(rating)::numeric, 1), 0)::float8,
		       MIN(created_at)
		FROM products
		WHERE seller_id = $1`

	var (
		stats      repository.SellerProductStats
		earliestAt *time.Time
	)

	err := r.pool.QueryRow(ctx, query, sellerID).Scan(
		&stats.TotalProducts,
		&stats.TotalViews,
		&stats.AverageRating,
		&earliestAt,
	)
	if err != nil {
		return repository.SellerProductStats{}, fmt.Errorf("seller product stats: %w", err)
	}

	stats.EarliestAt = earliestAt
	return stats, nil
}

// RecomputeRating atomically resets the product's rating to the mean of its
// review ratings, or 0 with none. A single UPDATE avoids lost updates under
// concurrent review mutations.
func (r *ProductRepository) RecomputeRating(ctx context.Context, productID string) error {
	query := `
		UPDATE products
		SET rating = COALESCE((SELECT AVG(rating)::float8 FROM reviews WHERE product_id = $1), 0),
		    updated_at = now()
		WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", productID)
	}

	return nil
}

// scanProduct scans the current row of a productColumns result set.
func scanProduct(rows pgx.Rows) (domain.Product, error) {
	var (
		p            domain.Product
		attrsJSON    []byte
		shippingJSON []byte
	)

	err := rows.Scan(
		&p.ID,
		&p.SellerID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Currency,
		&p.Category,
		&p.Brand,
		&p.Condition,
		&p.Status,
		&p.Location,
		&p.Quantity,
		&p.Views,
		&p.Rating,
		&p.Featured,
		&p.Tags,
		&attrsJSON,
		&shippingJSON,
		&p.DiscountPercent,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, apperrors.ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("scan product row: %w", err)
	}

	if attrsJSON != nil {
		if err := json.Unmarshal(attrsJSON, &p.Attributes); err != nil {
			return domain.Product{}, fmt.Errorf("unmarshal attributes: %w", err)
		}
	}

	if shippingJSON != nil {
		if err := json.Unmarshal(shippingJSON, &p.ShippingOptions); err != nil {
			return domain.Product{}, fmt.Errorf("unmarshal shipping options: %w", err)
		}
	}

	return p, nil
}

// collectProducts drains a productColumns result set.
func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
