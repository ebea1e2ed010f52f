package repository

type LocationRepository interface {
	List() []string
}

// Suggested pickup/dropoff places shown by the trip form. The list is not
// authoritative; free-text entry is always accepted.
var commonLocations = []string{
	"Aéroport Genève (GVA)",
	"Aéroport Lyon St-Exupéry (LYS)",
	"Aéroport Milan Malpensa (MXP)",
	"Chamonix Mont-Blanc",
	"Megève",
	"Saint-Gervais-les-Bains",
	"Les Houches",
	"Argentière",
	"Courchevel 1850",
	"Méribel",
	"Val Thorens",
	"Morzine",
	"Avoriaz",
	"Les Gets",
	"Annecy",
	"Gare de Bellegarde",
	"Gare de Lyon Part-Dieu",
}

type locationRepository struct{}

func NewLocationRepository() LocationRepository {
	return &locationRepository{}
}

func (r *locationRepository) List() []string {
	out := make([]string, len(commonLocations))
	copy(out, commonLocations)
	return out
}
