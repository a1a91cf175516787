package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	pkgkafka "github.com/codewithharz/glotrade-ecom-sub001/pkg/kafka"
)

// Kafka topic constants for catalog domain events.
const (
	TopicReviewCreated        = "glotrade.review.created"
	TopicReviewUpdated        = "glotrade.review.updated"
	TopicReviewDeleted        = "glotrade.review.deleted"
	TopicProductRatingUpdated = "glotrade.product.rating_updated"
)

// Aggregate type constants.
const (
	AggregateTypeReview  = "review"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// ReviewData is the payload for review lifecycle events.
type ReviewData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// RatingUpdatedData is the payload for a product.rating_updated event.
type RatingUpdatedData struct {
	ProductID string  `json:"product_id"`
	Rating    float64 `json:"rating"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func reviewData(review *domain.Review) ReviewData {
	return ReviewData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
	}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	return p.publishReview(ctx, TopicReviewCreated, review)
}

// PublishReviewUpdated publishes a review.updated event.
func (p *Producer) PublishReviewUpdated(ctx context.Context, review *domain.Review) error {
	return p.publishReview(ctx, TopicReviewUpdated, review)
}

// PublishReviewDeleted publishes a review.deleted event.
func (p *Producer) PublishReviewDeleted(ctx context.Context, review *domain.Review) error {
	return p.publishReview(ctx, TopicReviewDeleted, review)
}

func (p *Producer) publishReview(ctx context.Context, topic string, review *domain.Review) error {
	event, err := pkgkafka.NewEvent(topic, review.ID, AggregateTypeReview, SourceCatalogService, reviewData(review))
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published review event",
		slog.String("topic", topic),
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishRatingUpdated publishes a product.rating_updated event.
func (p *Producer) PublishRatingUpdated(ctx context.Context, productID string, rating float64) error {
	data := RatingUpdatedData{
		ProductID: productID,
		Rating:    rating,
	}

	event, err := pkgkafka.NewEvent(TopicProductRatingUpdated, productID, AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create product.rating_updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductRatingUpdated, event); err != nil {
		return fmt.Errorf("publish product.rating_updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.rating_updated event",
		slog.String("product_id", productID),
		slog.Float64("rating", rating),
	)

	return nil
}
