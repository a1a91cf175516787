package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
)

const (
	// DefaultRecommendLimit is used when the caller does not specify one.
	DefaultRecommendLimit = 12

	maxRecommendLimit = 50
)

// Recommendation candidates come from six sources, fetched concurrently. The
// slice index fixes each source's position in the interleave order.
const (
	sourceSameCategory = iota
	sourceSameBrand
	sourceSiblingCategory
	sourceRecentBrands
	sourceRecentCategories
	sourceFeatured
	sourceCount
)

// RecommendOptions tunes a recommendation request. RecentBrands and
// RecentCategories carry the caller's browsing affinities; either may be
// empty.
type RecommendOptions struct {
	Limit            int
	RecentBrands     []string
	RecentCategories []string
}

// RecommendService composes product recommendations around a seed product.
type RecommendService struct {
	products   repository.ProductRepository
	categories CategoryIndexProvider
	logger     *slog.Logger
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(products repository.ProductRepository, categories CategoryIndexProvider, logger *slog.Logger) *RecommendService {
	return &RecommendService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// Recommend returns up to opts.Limit products related to the seed product.
// The sources are fetched concurrently and interleaved round-robin in fixed
// order (same category, same brand, sibling categories, recent brand
// affinities, recent category affinities, featured) with global
// de-duplication, so the strongest sources lead the list without monopolizing
// it.
func (s *RecommendService) Recommend(ctx context.Context, seedID string, opts RecommendOptions) ([]domain.Product, error) {
	if seedID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	limit := opts.Limit
	if limit < 1 {
		limit = DefaultRecommendLimit
	}
	if limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}

	seed, err := s.products.GetByID(ctx, seedID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", seedID)
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	idx, err := s.categories.Index(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "category index unavailable, category sources match literally",
			slog.String("error", err.Error()),
		)
		idx = domain.BuildCategoryIndex(nil)
	}

	// Caps taper with source strength: half the limit for the seed's own
	// category, a third for brand and sibling matches, a quarter for the
	// caller's affinities. The featured backstop may fill the whole list on
	// a sparse catalog.
	half := ceilDiv(limit, 2)
	third := ceilDiv(limit, 3)
	quarter := ceilDiv(limit, 4)

	sources := make([][]domain.Product, sourceCount)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	g.Go(func() error {
		items, err := s.products.ListByCategories(gctx, idx.DescendantNames(seed.Category), seed.ID, half)
		sources[sourceSameCategory] = items
		return err
	})

	g.Go(func() error {
		if seed.Brand == "" {
			return nil
		}
		items, err := s.products.ListByBrands(gctx, []string{seed.Brand}, seed.ID, third)
		sources[sourceSameBrand] = items
		return err
	})

	g.Go(func() error {
		siblings := idx.SiblingNames(seed.Category)
		if len(siblings) == 0 {
			return nil
		}
		items, err := s.products.ListByCategories(gctx, siblings, seed.ID, third)
		sources[sourceSiblingCategory] = items
		return err
	})

	g.Go(func() error {
		if len(opts.RecentBrands) == 0 {
			return nil
		}
		items, err := s.products.ListByBrands(gctx, opts.RecentBrands, seed.ID, quarter)
		sources[sourceRecentBrands] = items
		return err
	})

	g.Go(func() error {
		if len(opts.RecentCategories) == 0 {
			return nil
		}
		items, err := s.products.ListByCategories(gctx, opts.RecentCategories, seed.ID, quarter)
		sources[sourceRecentCategories] = items
		return err
	})

	g.Go(func() error {
		items, err := s.products.ListFeatured(gctx, seed.ID, limit)
		sources[sourceFeatured] = items
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	recommendations := interleave(sources, seed.ID, limit)

	s.logger.DebugContext(ctx, "recommendations composed",
		slog.String("seed_id", seed.ID),
		slog.Int("count", len(recommendations)),
	)

	return recommendations, nil
}

// interleave merges the candidate sources round-robin in slice order. In round
// i each source offers only its i-th element; an element already taken (or the
// seed) is dropped, not replaced, so a source that duplicates in round i
// contributes nothing that round. The round order is part of the contract:
// diverse second-round picks rank above an exhausted source's deeper items.
func interleave(sources [][]domain.Product, seedID string, limit int) []domain.Product {
	result := make([]domain.Product, 0, limit)
	taken := map[string]bool{seedID: true}

	for i := 0; len(result) < limit; i++ {
		remaining := false
		for _, source := range sources {
			if i >= len(source) {
				continue
			}
			remaining = true
			candidate := source[i]
			if taken[candidate.ID] {
				continue
			}
			taken[candidate.ID] = true
			result = append(result, candidate)
			if len(result) == limit {
				break
			}
		}
		if !remaining {
			break
		}
	}

	return result
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
