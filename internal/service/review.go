package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
	apperrors "github.com/codewithharz/glotrade-ecom-sub001/pkg/errors"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/pagination"
)

// ReviewEventPublisher publishes review lifecycle and rating events. A nil
// publisher disables eventing.
type ReviewEventPublisher interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
	PublishReviewUpdated(ctx context.Context, review *domain.Review) error
	PublishReviewDeleted(ctx context.Context, review *domain.Review) error
	PublishRatingUpdated(ctx context.Context, productID string, rating float64) error
}

// ReviewService manages product reviews and keeps the denormalized product
// rating in sync after every mutation.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	events   ReviewEventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a new review service. events may be nil.
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	events ReviewEventPublisher,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// CreateReviewInput holds the parameters for submitting a review.
type CreateReviewInput struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	UserID    string `json:"user_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// UpdateReviewInput holds the parameters for editing a review.
type UpdateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// CreateReview submits a review for an existing product and recomputes the
// product's rating.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", input.ProductID)
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	s.refreshRating(ctx, review.ProductID)

	if s.events != nil {
		if err := s.events.PublishReviewCreated(ctx, review); err != nil {
			s.logger.WarnContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return review, nil
}

// UpdateReview edits an existing review and recomputes the product's rating.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, input *UpdateReviewInput) (*domain.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review updated",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	s.refreshRating(ctx, review.ProductID)

	if s.events != nil {
		if err := s.events.PublishReviewUpdated(ctx, review); err != nil {
			s.logger.WarnContext(ctx, "failed to publish review.updated event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return review, nil
}

// DeleteReview removes a review and recomputes the product's rating. Deleting
// the last review resets the rating to zero.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("review", id)
		}
		return apperrors.StoreUnavailable(err)
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", id),
		slog.String("product_id", review.ProductID),
	)

	s.refreshRating(ctx, review.ProductID)

	if s.events != nil {
		if err := s.events.PublishReviewDeleted(ctx, review); err != nil {
			s.logger.WarnContext(ctx, "failed to publish review.deleted event",
				slog.String("review_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// ListReviews returns a product's reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, params pagination.Params) (pagination.Result[domain.Review], error) {
	reviews, total, err := s.reviews.ListByProduct(ctx, productID, params.PerPage, params.Offset)
	if err != nil {
		return pagination.Result[domain.Review]{}, apperrors.StoreUnavailable(err)
	}
	return pagination.NewResult(reviews, total, params), nil
}

// refreshRating recomputes the product's denormalized rating and emits the
// rating event. The review mutation has already committed, so failures here
// are logged and absorbed; the next mutation heals the rating.
func (s *ReviewService) refreshRating(ctx context.Context, productID string) {
	if err := s.products.RecomputeRating(ctx, productID); err != nil {
		s.logger.WarnContext(ctx, "rating recompute failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return
	}

	if s.events == nil {
		return
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load product for rating event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.events.PublishRatingUpdated(ctx, productID, product.Rating); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.rating_updated event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}
