package usecase

import (
	"context"

	"driver-montblanc/internal/data/repository"
	"driver-montblanc/internal/dto/response"

	"go.uber.org/zap"
)

type CatalogService interface {
	GetLocations(ctx context.Context) *response.LocationsResponse
}

type catalogService struct {
	locations repository.LocationRepository
	log       *zap.Logger
}

func NewCatalogService(locations repository.LocationRepository, log *zap.Logger) CatalogService {
	return &catalogService{
		locations: locations,
		log:       log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetLocations(ctx context.Context) *response.LocationsResponse {
	return &response.LocationsResponse{Locations: s.locations.List()}
}
