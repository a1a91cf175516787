package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/slug"
)

const (
	categoryCacheKey = "catalog:categories:active"
	categoryCacheTTL = 5 * time.Minute
)

// CategoryService manages the category hierarchy and serves the in-memory
// index used by search and recommendations. The flat active list is cached in
// Redis; the cache is a read-through accelerator only, every miss or failure
// falls back to the store.
type CategoryService struct {
	repo   repository.CategoryRepository
	cache  *redis.Client
	logger *slog.Logger
}

// NewCategoryService creates a new category service. cache may be nil, in
// which case every read hits the store.
func NewCategoryService(repo repository.CategoryRepository, cache *redis.Client, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListActive returns all active categories, preferring the cache.
func (s *CategoryService) ListActive(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, categoryCacheKey).Bytes()
		if err == nil {
			var categories []domain.Category
			if jsonErr := json.Unmarshal(data, &categories); jsonErr == nil {
				return categories, nil
			}
			s.logger.WarnContext(ctx, "category cache entry corrupt, refetching")
		} else if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "category cache read failed",
				slog.String("error", err.Error()),
			)
		}
	}

	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoryCacheKey, data, categoryCacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "category cache write failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return categories, nil
}

// Index builds the category index from the active list.
func (s *CategoryService) Index(ctx context.Context) (*domain.CategoryIndex, error) {
	categories, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildCategoryIndex(categories), nil
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name       string  `json:"name" validate:"required,min=1,max=120"`
	ParentSlug *string `json:"parent_slug,omitempty"`
}

// CreateCategory inserts a new active category and invalidates the cache.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("category name is required")
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Slug:      slug.Generate(input.Name),
		ParentID:  input.ParentSlug,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, categoryCacheKey).Err(); err != nil {
			s.logger.WarnContext(ctx, "category cache invalidation failed",
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return category, nil
}
