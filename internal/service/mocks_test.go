package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock Product Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) Query(ctx context.Context, q repository.ProductQuery, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, q, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Count(ctx context.Context, q repository.ProductQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepository) ListByCategories(ctx context.Context, names []string, excludeID string, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, names, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListByBrands(ctx context.Context, brands []string, excludeID string, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, brands, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListFeatured(ctx context.Context, excludeID string, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) StatsBySeller(ctx context.Context, sellerID string) (repository.SellerProductStats, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(repository.SellerProductStats), args.Error(1)
}

func (m *mockProductRepository) RecomputeRating(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Mock Seller Repository ---

type mockSellerRepository struct {
	mock.Mock
}

func (m *mockSellerRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Seller, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Seller), args.Error(1)
}

// --- Mock Order Repository ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) StatsBySeller(ctx context.Context, sellerID string) (repository.OrderStats, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(repository.OrderStats), args.Error(1)
}

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Review, int, error) {
	args := m.Called(ctx, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

// --- Mock Category Repository ---

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock Category Index Provider ---

type mockIndexProvider struct {
	mock.Mock
}

func (m *mockIndexProvider) Index(ctx context.Context) (*domain.CategoryIndex, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryIndex), args.Error(1)
}

// --- Mock Event Publisher ---

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishReviewUpdated(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishReviewDeleted(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishRatingUpdated(ctx context.Context, productID string, rating float64) error {
	args := m.Called(ctx, productID, rating)
	return args.Error(0)
}

// --- Shared fixtures ---

func testCategories() []domain.Category {
	parent := func(s string) *string { return &s }
	return []domain.Category{
		{ID: "c1", Name: "Electronics", Slug: "electronics", IsActive: true},
		{ID: "c2", Name: "Cameras", Slug: "cameras", ParentID: parent("electronics"), IsActive: true},
		{ID: "c3", Name: "Phones", Slug: "phones", ParentID: parent("electronics"), IsActive: true},
		{ID: "c4", Name: "Lenses", Slug: "lenses", ParentID: parent("cameras"), IsActive: true},
	}
}

func testIndex() *domain.CategoryIndex {
	return domain.BuildCategoryIndex(testCategories())
}

func activeProduct(id string) domain.Product {
	return domain.Product{
		ID:       id,
		SellerID: "seller-" + id,
		Title:    "Product " + id,
		Status:   domain.ProductStatusActive,
		Category: "Cameras",
		Rating:   4.0,
	}
}
