package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
)

const maxPerPage = 100

// CategoryIndexProvider supplies the category index used for subtree and
// sibling expansion.
type CategoryIndexProvider interface {
	Index(ctx context.Context) (*domain.CategoryIndex, error)
}

// SearchResult is one page of catalog search results.
//
// Total is counted by the store before the page-level verified-seller and
// minimum-rating filters run, so a page can hold fewer items than Total
// implies. Clients paginate on Total as-is.
type SearchResult struct {
	Items      []domain.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// SearchService executes paginated catalog queries.
type SearchService struct {
	products   repository.ProductRepository
	sellers    repository.SellerRepository
	categories CategoryIndexProvider
	logger     *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(
	products repository.ProductRepository,
	sellers repository.SellerRepository,
	categories CategoryIndexProvider,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		products:   products,
		sellers:    sellers,
		categories: categories,
		logger:     logger,
	}
}

type countOutcome struct {
	total int
	err   error
}

// Search runs the compiled query and returns the requested page. The total
// count runs concurrently with the page fetch; a failed count degrades to a
// best-effort total instead of failing the search.
func (s *SearchService) Search(ctx context.Context, filters domain.SearchFilters, page, perPage int) (*SearchResult, error) {
	if page < 1 {
		return nil, apperrors.InvalidInput("page must be at least 1")
	}
	if perPage < 1 {
		return nil, apperrors.InvalidInput("per_page must be at least 1")
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if filters.SortBy != "" && !domain.IsValidSort(filters.SortBy) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid sort option %q", filters.SortBy))
	}

	idx, err := s.categories.Index(ctx)
	if err != nil {
		// Without the index a category filter still narrows on the literal
		// value, it just loses subtree expansion.
		s.logger.WarnContext(ctx, "category index unavailable, category filters match literally",
			slog.String("error", err.Error()),
		)
		idx = domain.BuildCategoryIndex(nil)
	}

	query := CompileFilters(filters, idx)
	offset := (page - 1) * perPage

	countCh := make(chan countOutcome, 1)
	go func() {
		total, err := s.products.Count(ctx, query)
		countCh <- countOutcome{total: total, err: err}
	}()

	items, err := s.products.Query(ctx, query, perPage, offset)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	count := <-countCh
	total := count.total
	if count.err != nil {
		total = offset + len(items)
		s.logger.WarnContext(ctx, "result count failed, reporting best-effort total",
			slog.Int("total", total),
			slog.String("error", count.err.Error()),
		)
	}

	items, err = s.applyPageFilters(ctx, filters, items)
	if err != nil {
		return nil, err
	}

	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	s.logger.DebugContext(ctx, "search executed",
		slog.String("query", filters.Query),
		slog.Int("page", page),
		slog.Int("returned", len(items)),
		slog.Int("total", total),
	)

	return &SearchResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

// applyPageFilters applies the verified-seller and minimum-rating filters to
// the already-fetched page.
func (s *SearchService) applyPageFilters(ctx context.Context, filters domain.SearchFilters, items []domain.Product) ([]domain.Product, error) {
	if filters.RatingMin != nil {
		kept := items[:0]
		for _, p := range items {
			if p.Rating >= *filters.RatingMin {
				kept = append(kept, p)
			}
		}
		items = kept
	}

	if filters.VerifiedSeller && len(items) > 0 {
		ids := make([]string, 0, len(items))
		seen := make(map[string]bool, len(items))
		for _, p := range items {
			if !seen[p.SellerID] {
				seen[p.SellerID] = true
				ids = append(ids, p.SellerID)
			}
		}

		sellers, err := s.sellers.GetByIDs(ctx, ids)
		if err != nil {
			return nil, apperrors.StoreUnavailable(err)
		}

		kept := items[:0]
		for _, p := range items {
			if seller, ok := sellers[p.SellerID]; ok && seller.IsVerified {
				kept = append(kept, p)
			}
		}
		items = kept
	}

	if items == nil {
		items = []domain.Product{}
	}

	return items, nil
}
