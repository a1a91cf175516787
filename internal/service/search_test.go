package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
)

func newTestSearchService(products *mockProductRepository, sellers *mockSellerRepository, categories *mockIndexProvider) *SearchService {
	return NewSearchService(products, sellers, categories, newTestLogger())
}

func TestSearch_InvalidPagination(t *testing.T) {
	svc := newTestSearchService(new(mockProductRepository), new(mockSellerRepository), new(mockIndexProvider))

	_, err := svc.Search(context.Background(), domain.SearchFilters{}, 0, 20)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Search(context.Background(), domain.SearchFilters{}, 1, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSearch_InvalidSort(t *testing.T) {
	svc := newTestSearchService(new(mockProductRepository), new(mockSellerRepository), new(mockIndexProvider))

	_, err := svc.Search(context.Background(), domain.SearchFilters{SortBy: "alphabetical"}, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSearch_Success(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	items := []domain.Product{activeProduct("p1"), activeProduct("p2")}
	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.AnythingOfType("repository.ProductQuery"), 20, 0).Return(items, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(45, nil)

	result, err := svc.Search(ctx, domain.SearchFilters{Category: "cameras"}, 1, 20)

	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 45, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PerPage)
	assert.Equal(t, 3, result.TotalPages)
	products.AssertExpectations(t)
}

func TestSearch_CategorySubtreeCompiled(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.MatchedBy(func(q repository.ProductQuery) bool {
		return assert.ObjectsAreEqual([]string{"Cameras", "Lenses"}, q.CategoryNames)
	}), 20, 0).Return([]domain.Product{}, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(0, nil)

	_, err := svc.Search(ctx, domain.SearchFilters{Category: "cameras"}, 1, 20)

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestSearch_QueryFailure(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.AnythingOfType("repository.ProductQuery"), 20, 0).
		Return(nil, errors.New("connection refused"))
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(0, nil).Maybe()

	_, err := svc.Search(ctx, domain.SearchFilters{}, 1, 20)

	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestSearch_CountFailureDegradesToBestEffortTotal(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	items := []domain.Product{activeProduct("p1"), activeProduct("p2"), activeProduct("p3")}
	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.AnythingOfType("repository.ProductQuery"), 10, 20).Return(items, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).
		Return(0, errors.New("count timed out"))

	result, err := svc.Search(ctx, domain.SearchFilters{}, 3, 10)

	require.NoError(t, err)
	// offset 20 plus the 3 returned items
	assert.Equal(t, 23, result.Total)
	assert.Len(t, result.Items, 3)
}

func TestSearch_IndexFailureFallsBackToLiteralCategory(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	categories.On("Index", ctx).Return(nil, errors.New("redis down"))
	products.On("Query", ctx, mock.MatchedBy(func(q repository.ProductQuery) bool {
		return assert.ObjectsAreEqual([]string{"Cameras"}, q.CategoryNames)
	}), 20, 0).Return([]domain.Product{}, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(0, nil)

	_, err := svc.Search(ctx, domain.SearchFilters{Category: "Cameras"}, 1, 20)

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestSearch_RatingMinFiltersPageKeepsTotal(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	low := activeProduct("p1")
	low.Rating = 3.2
	high := activeProduct("p2")
	high.Rating = 4.6

	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.AnythingOfType("repository.ProductQuery"), 20, 0).
		Return([]domain.Product{low, high}, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(2, nil)

	ratingMin := 4.0
	result, err := svc.Search(ctx, domain.SearchFilters{RatingMin: &ratingMin}, 1, 20)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "p2", result.Items[0].ID)
	// Total reflects the pre-filter match count.
	assert.Equal(t, 2, result.Total)
}

func TestSearch_VerifiedSellerFiltersPage(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	p1 := activeProduct("p1")
	p2 := activeProduct("p2")

	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.AnythingOfType("repository.ProductQuery"), 20, 0).
		Return([]domain.Product{p1, p2}, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(2, nil)
	sellers.On("GetByIDs", ctx, []string{p1.SellerID, p2.SellerID}).Return(map[string]domain.Seller{
		p1.SellerID: {ID: p1.SellerID, IsVerified: true},
		p2.SellerID: {ID: p2.SellerID, IsVerified: false},
	}, nil)

	result, err := svc.Search(ctx, domain.SearchFilters{VerifiedSeller: true}, 1, 20)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "p1", result.Items[0].ID)
	assert.Equal(t, 2, result.Total)
	sellers.AssertExpectations(t)
}

func TestSearch_VerifiedSellerLookupFailure(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.AnythingOfType("repository.ProductQuery"), 20, 0).
		Return([]domain.Product{activeProduct("p1")}, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(1, nil)
	sellers.On("GetByIDs", ctx, mock.Anything).Return(nil, errors.New("sellers table gone"))

	_, err := svc.Search(ctx, domain.SearchFilters{VerifiedSeller: true}, 1, 20)

	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestSearch_PerPageCapped(t *testing.T) {
	products := new(mockProductRepository)
	sellers := new(mockSellerRepository)
	categories := new(mockIndexProvider)
	svc := newTestSearchService(products, sellers, categories)
	ctx := context.Background()

	categories.On("Index", ctx).Return(testIndex(), nil)
	products.On("Query", ctx, mock.AnythingOfType("repository.ProductQuery"), maxPerPage, 0).
		Return([]domain.Product{}, nil)
	products.On("Count", ctx, mock.AnythingOfType("repository.ProductQuery")).Return(0, nil)

	result, err := svc.Search(ctx, domain.SearchFilters{}, 1, 500)

	require.NoError(t, err)
	assert.Equal(t, maxPerPage, result.PerPage)
	products.AssertExpectations(t)
}
