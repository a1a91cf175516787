package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
)

func newTestCategoryService(repo *mockCategoryRepository) *CategoryService {
	return NewCategoryService(repo, nil, newTestLogger())
}

func TestListActiveCategories_NoCacheReadsStore(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)
	ctx := context.Background()

	repo.On("ListActive", ctx).Return(testCategories(), nil)

	categories, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)
	repo.AssertExpectations(t)
}

func TestListActiveCategories_StoreFailure(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)
	ctx := context.Background()

	repo.On("ListActive", ctx).Return(nil, errors.New("connection refused"))

	_, err := svc.ListActive(ctx)
	require.Error(t, err)
	repo.AssertExpectations(t)
}

func TestCategoryIndex_BuiltFromActiveList(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)
	ctx := context.Background()

	repo.On("ListActive", ctx).Return(testCategories(), nil)

	idx, err := svc.Index(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"Cameras", "Lenses"},
		idx.DescendantNames("cameras"),
	)
	repo.AssertExpectations(t)
}

func TestCreateCategory_Success(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).Return(nil)

	parent := "electronics"
	category, err := svc.CreateCategory(ctx, &CreateCategoryInput{
		Name:       "Drone Parts",
		ParentSlug: &parent,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "drone-parts", category.Slug)
	assert.Equal(t, &parent, category.ParentID)
	assert.True(t, category.IsActive)
	repo.AssertExpectations(t)
}

func TestCreateCategory_EmptyName(t *testing.T) {
	svc := newTestCategoryService(new(mockCategoryRepository))

	_, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{Name: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).
		Return(apperrors.AlreadyExists("category", "slug", "cameras"))

	_, err := svc.CreateCategory(ctx, &CreateCategoryInput{Name: "Cameras"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	repo.AssertExpectations(t)
}
