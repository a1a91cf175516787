package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
	"github.com/codewithharz/glotrade-ecom-sub001/internal/repository"
)

// VendorService aggregates seller-facing dashboard metrics.
type VendorService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *slog.Logger
}

// NewVendorService creates a new vendor metrics service.
func NewVendorService(products repository.ProductRepository, orders repository.OrderRepository, logger *slog.Logger) *VendorService {
	return &VendorService{
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// Metrics aggregates the seller's figures. The order and product sides run
// concurrently and fail independently: a side that cannot be read contributes
// zeroes and a logged warning, never an error. The dashboard always renders.
func (s *VendorService) Metrics(ctx context.Context, sellerID string) domain.VendorMetrics {
	var (
		wg           sync.WaitGroup
		orderStats   repository.OrderStats
		productStats repository.SellerProductStats
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		stats, err := s.orders.StatsBySeller(ctx, sellerID)
		if err != nil {
			s.logger.WarnContext(ctx, "order stats unavailable, reporting zeroes",
				slog.String("seller_id", sellerID),
				slog.String("error", err.Error()),
			)
			return
		}
		orderStats = stats
	}()

	go func() {
		defer wg.Done()
		stats, err := s.products.StatsBySeller(ctx, sellerID)
		if err != nil {
			s.logger.WarnContext(ctx, "product stats unavailable, reporting zeroes",
				slog.String("seller_id", sellerID),
				slog.String("error", err.Error()),
			)
			return
		}
		productStats = stats
	}()

	wg.Wait()

	activeSince := time.Now().UTC()
	if productStats.EarliestAt != nil {
		activeSince = *productStats.EarliestAt
	}

	return domain.VendorMetrics{
		SoldCount:     orderStats.SoldCount,
		TotalRevenue:  orderStats.TotalRevenue,
		AverageRating: productStats.AverageRating,
		TotalViews:    productStats.TotalViews,
		ActiveSince:   activeSince,
		TotalProducts: productStats.TotalProducts,
	}
}
