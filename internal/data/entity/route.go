package entity

// FixedRoute is a pre-negotiated flat tariff for a known route pair,
// independent of measured distance and of travel direction.
type FixedRoute struct {
	From        string
	To          string
	SedanTariff int // 1-3 passengers, EUR
	VanTariff   int // 4+ passengers or explicit van, EUR
}

// Tariff picks the sedan or van price for the party size and vehicle.
func (r FixedRoute) Tariff(passengers int, vehicle VehicleClass) int {
	if passengers > 3 || vehicle == VehicleVan {
		return r.VanTariff
	}
	return r.SedanTariff
}

// RouteMatch qualifies how a fixed route was matched against a trip request.
// Precedence: exact over substring, pickup-dropoff order over reversed.
type RouteMatch int

const (
	MatchNone RouteMatch = iota
	MatchExact
	MatchExactReversed
	MatchSubstring
	MatchSubstringReversed
)
