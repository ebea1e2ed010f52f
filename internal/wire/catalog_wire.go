package wire

import (
	"driver-montblanc/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// GET /api/locations - Suggested pickup and dropoff locations
	r.Get("/api/locations", catalogHandler.GetLocations)
}
