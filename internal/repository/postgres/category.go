package postgres

import (
	"context"
	"fmt"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/database"
	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
)

// CategoryRepository implements repository.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	pool database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool database.DBTX) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, parent_slug, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.ParentID,
		category.IsActive,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "slug", category.Slug)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// ListActive returns all active categories as a flat list, ordered by name.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, slug, parent_slug, is_active, created_at, updated_at
		FROM categories
		WHERE is_active = TRUE
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}
