package repository

import (
	"strings"

	"driver-montblanc/internal/data/entity"

	"go.uber.org/zap"
)

type RouteRepository interface {
	// Match finds the fixed route covering pickup->dropoff, if any, and
	// reports how it matched. Precedence: exact over substring, the
	// requested direction over the reversed one.
	Match(pickup, dropoff string) (*entity.FixedRoute, entity.RouteMatch)
	List() []entity.FixedRoute
}

// Fixed tariffs for the routes the operator has pre-negotiated, sedan and
// van prices per entry. Tariffs are direction-independent.
var fixedRoutes = []entity.FixedRoute{
	// Geneva airport departures
	{From: "Aéroport Genève (GVA)", To: "Chamonix Mont-Blanc", SedanTariff: 220, VanTariff: 260},
	{From: "Aéroport Genève (GVA)", To: "Les Houches", SedanTariff: 210, VanTariff: 250},
	{From: "Aéroport Genève (GVA)", To: "Argentière", SedanTariff: 230, VanTariff: 270},
	{From: "Aéroport Genève (GVA)", To: "Megève", SedanTariff: 260, VanTariff: 300},
	{From: "Aéroport Genève (GVA)", To: "Saint-Gervais-les-Bains", SedanTariff: 240, VanTariff: 280},
	{From: "Aéroport Genève (GVA)", To: "Morzine", SedanTariff: 260, VanTariff: 300},
	{From: "Aéroport Genève (GVA)", To: "Avoriaz", SedanTariff: 280, VanTariff: 320},
	{From: "Aéroport Genève (GVA)", To: "Courchevel 1850", SedanTariff: 450, VanTariff: 500},
	{From: "Aéroport Genève (GVA)", To: "Val Thorens", SedanTariff: 480, VanTariff: 550},
	{From: "Aéroport Genève (GVA)", To: "Annecy", SedanTariff: 160, VanTariff: 190},
	// Lyon airport departures
	{From: "Aéroport Lyon St-Exupéry (LYS)", To: "Chamonix Mont-Blanc", SedanTariff: 450, VanTariff: 520},
	{From: "Aéroport Lyon St-Exupéry (LYS)", To: "Megève", SedanTariff: 420, VanTariff: 490},
	{From: "Aéroport Lyon St-Exupéry (LYS)", To: "Courchevel 1850", SedanTariff: 480, VanTariff: 550},
}

type routeRepository struct {
	routes []entity.FixedRoute
	log    *zap.Logger
}

func NewRouteRepository(log *zap.Logger) RouteRepository {
	return &routeRepository{
		routes: fixedRoutes,
		log:    log.With(zap.String("repository", "route")),
	}
}

func (r *routeRepository) List() []entity.FixedRoute {
	out := make([]entity.FixedRoute, len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *routeRepository) Match(pickup, dropoff string) (*entity.FixedRoute, entity.RouteMatch) {
	p := normalize(pickup)
	d := normalize(dropoff)
	if p == "" || d == "" {
		return nil, entity.MatchNone
	}

	// Each pass runs over the whole table before falling through to the
	// next, weaker kind of match.
	passes := []struct {
		kind entity.RouteMatch
		fits func(from, to string) bool
	}{
		{entity.MatchExact, func(from, to string) bool {
			return from == p && to == d
		}},
		{entity.MatchExactReversed, func(from, to string) bool {
			return from == d && to == p
		}},
		{entity.MatchSubstring, func(from, to string) bool {
			return overlaps(from, p) && overlaps(to, d)
		}},
		{entity.MatchSubstringReversed, func(from, to string) bool {
			return overlaps(from, d) && overlaps(to, p)
		}},
	}

	for _, pass := range passes {
		for i := range r.routes {
			route := r.routes[i]
			if pass.fits(normalize(route.From), normalize(route.To)) {
				return &route, pass.kind
			}
		}
	}

	return nil, entity.MatchNone
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// overlaps reports containment in either direction, so "Chamonix" still hits
// the "Chamonix Mont-Blanc" entry and vice versa.
func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
