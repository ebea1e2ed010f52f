package adaptor

import (
	"net/http"

	"driver-montblanc/internal/usecase"
	"driver-montblanc/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetLocations handles GET /api/locations
func (h *CatalogHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.GetLocations(r.Context()))
}
