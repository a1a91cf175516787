package repository

import (
	"context"
	"time"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
)

// ShippingQuery is the single shared shipping-options sub-match. FreeOnly and
// MaxETADays apply to the same option set in one predicate, never as two
// independent ones.
type ShippingQuery struct {
	FreeOnly   bool
	MaxETADays *int
}

// ProductQuery is the compiled, store-ready form of SearchFilters. The filter
// compiler produces it; the product repository lowers it to SQL. Status is
// always set (the compiler pins it to active).
type ProductQuery struct {
	Status        string
	Text          string
	CategoryNames []string
	Brand         *string
	Condition     *string
	Location      *string
	SellerID      *string
	MinPrice      *int64
	MaxPrice      *int64
	DiscountMin   *int
	CreatedAfter  *time.Time
	Shipping      *ShippingQuery
	Attributes    map[string][]string
	SortBy        string
}

// SellerProductStats aggregates a seller's own product figures.
type SellerProductStats struct {
	TotalProducts int
	TotalViews    int64
	AverageRating float64 // rounded to one decimal place, 0 with no products
	EarliestAt    *time.Time
}

// OrderStats aggregates completed-order figures for a seller.
type OrderStats struct {
	SoldCount    int
	TotalRevenue int64
}

// ProductRepository defines product persistence operations used by the engine.
type ProductRepository interface {
	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Query returns products matching the compiled query with the given
	// limit/offset, ordered per q.SortBy (newest first by default).
	Query(ctx context.Context, q ProductQuery, limit, offset int) ([]domain.Product, error)

	// Count returns the number of products matching the compiled query.
	Count(ctx context.Context, q ProductQuery) (int, error)

	// ListByCategories returns active products in any of the named categories,
	// ranked by views descending, excluding excludeID.
	ListByCategories(ctx context.Context, names []string, excludeID string, limit int) ([]domain.Product, error)

	// ListByBrands returns active products of any of the given brands, ranked
	// by views descending, excluding excludeID.
	ListByBrands(ctx context.Context, brands []string, excludeID string, limit int) ([]domain.Product, error)

	// ListFeatured returns active featured products, ranked by views
	// descending, excluding excludeID.
	ListFeatured(ctx context.Context, excludeID string, limit int) ([]domain.Product, error)

	// StatsBySeller aggregates the seller's product statistics.
	StatsBySeller(ctx context.Context, sellerID string) (SellerProductStats, error)

	// RecomputeRating atomically resets the product's rating to the mean of
	// its review ratings, or 0 with none.
	RecomputeRating(ctx context.Context, productID string) error
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category.
	Create(ctx context.Context, category *domain.Category) error

	// ListActive returns all active categories as a flat list.
	ListActive(ctx context.Context) ([]domain.Category, error)
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review. Returns AlreadyExists when the user has
	// already reviewed the product.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// Update modifies an existing review's rating and comment.
	Update(ctx context.Context, review *domain.Review) error

	// Delete removes a review by its identifier.
	Delete(ctx context.Context, id string) error

	// ListByProduct returns a product's reviews, newest first, with the total count.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Review, int, error)
}

// OrderRepository defines the read-only order operations the engine consumes.
type OrderRepository interface {
	// StatsBySeller sums quantity and total price over the seller's completed
	// orders, matching either the top-level seller reference or any line
	// item's vendor reference.
	StatsBySeller(ctx context.Context, sellerID string) (OrderStats, error)
}

// SellerRepository defines seller read operations.
type SellerRepository interface {
	// GetByIDs returns the sellers for the given ids, keyed by id. Missing
	// ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Seller, error)
}
