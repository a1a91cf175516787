package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/service"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/health"
	"github.com/codewithharz/glotrade-ecom-sub001/pkg/middleware"
)

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	searchService *service.SearchService,
	recommendService *service.RecommendService,
	vendorService *service.VendorService,
	reviewService *service.ReviewService,
	categoryService *service.CategoryService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	searchHandler := NewSearchHandler(searchService, logger)
	recommendHandler := NewRecommendHandler(recommendService, logger)
	vendorHandler := NewVendorHandler(vendorService, logger)
	reviewHandler := NewReviewHandler(reviewService, logger)
	categoryHandler := NewCategoryHandler(categoryService, logger)

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/search", searchHandler.Search)
	})

	r.Route("/api/v1/products/{productId}/recommendations", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", recommendHandler.Recommend)
	})

	r.Route("/api/v1/vendors/{id}/metrics", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", vendorHandler.Metrics)
	})

	r.Route("/api/v1/products/{productId}/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", reviewHandler.ListReviews)
		r.Post("/", reviewHandler.CreateReview)
	})

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", categoryHandler.ListCategories)
		r.Post("/", categoryHandler.CreateCategory)
	})

	return r
}
