package usecase

import (
	"driver-montblanc/internal/data/repository"
	"driver-montblanc/internal/gateway"
	"driver-montblanc/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog CatalogService
	Pricing PricingService
	Booking BookingService
}

func NewService(repo *repository.Repository, gw *gateway.Set, config *utils.Config, log *zap.Logger) *Service {
	pricing := NewPricingService(repo, gw, log)
	return &Service{
		Catalog: NewCatalogService(repo.Location, log),
		Pricing: pricing,
		Booking: NewBookingService(repo, pricing, gw, log),
	}
}
