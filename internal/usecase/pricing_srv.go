package usecase

import (
	"context"

	"driver-montblanc/internal/data/entity"
	"driver-montblanc/internal/data/repository"
	"driver-montblanc/internal/dto/response"
	"driver-montblanc/internal/gateway"
	"driver-montblanc/pkg/utils"

	"go.uber.org/zap"
)

const (
	// Fallback heuristics for routes outside the fixed-tariff table.
	fallbackBaseFare     = 200
	fallbackVanSurcharge = 50

	luxuryMultiplier  = 1.4
	roundTripDiscount = 0.95

	// Labels used until a directions lookup is available for the route.
	placeholderDuration = "1h 15min"
	placeholderDistance = "88 km"

	messageFixedTariff = "Tarif fixe tout compris"
	messageApproximate = "Tarif estimatif basé sur la distance"
)

type PricingService interface {
	// Estimate never fails: trips outside the fixed-route table get an
	// approximate fallback fare instead of an error.
	Estimate(ctx context.Context, trip *entity.TripRequest) *entity.PriceEstimate

	// QuoteAI returns an advisory quote for the trip, degrading to the
	// "Sur devis" sentinel whenever the model is unavailable or fails.
	QuoteAI(ctx context.Context, trip *entity.TripRequest) *response.AIQuoteResponse
}

type pricingService struct {
	routes repository.RouteRepository
	travel gateway.TravelEstimator
	quotes gateway.QuoteGenerator
	log    *zap.Logger
}

func NewPricingService(repo *repository.Repository, gw *gateway.Set, log *zap.Logger) PricingService {
	return &pricingService{
		routes: repo.Route,
		travel: gw.Travel,
		quotes: gw.Quotes,
		log:    log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Estimate(ctx context.Context, trip *entity.TripRequest) *entity.PriceEstimate {
	route, match := s.routes.Match(trip.Pickup, trip.Dropoff)

	var base int
	fixed := match != entity.MatchNone
	if fixed {
		base = route.Tariff(trip.Passengers, trip.Vehicle)
	} else {
		base = fallbackBaseFare
		if trip.Passengers > 3 {
			base += fallbackVanSurcharge
		}
	}

	amount := base
	if trip.Vehicle == entity.VehicleLuxury {
		amount = utils.RoundEuro(float64(amount) * luxuryMultiplier)
	}
	if trip.RoundTrip {
		amount = utils.RoundEuro(float64(amount) * 2 * roundTripDiscount)
	}

	duration, distance := placeholderDuration, placeholderDistance
	message := messageFixedTariff
	if !fixed {
		message = messageApproximate
		// A fixed tariff is pre-negotiated and needs no distance lookup;
		// only approximate fares benefit from real labels.
		if s.travel != nil {
			if d, dist, err := s.travel.TravelEstimate(ctx, trip.Pickup, trip.Dropoff); err == nil {
				duration, distance = d, dist
			} else {
				s.log.Warn("Travel estimate lookup failed, using placeholders",
					zap.Error(err),
					zap.String("pickup", trip.Pickup),
					zap.String("dropoff", trip.Dropoff),
				)
			}
		}
	}

	s.log.Info("Price estimated",
		zap.String("pickup", trip.Pickup),
		zap.String("dropoff", trip.Dropoff),
		zap.Int("amount", amount),
		zap.Bool("fixed_tariff", fixed),
		zap.Bool("round_trip", trip.RoundTrip),
	)

	return &entity.PriceEstimate{
		Amount:        amount,
		Duration:      duration,
		Distance:      distance,
		Message:       message,
		IsFixedTariff: fixed,
	}
}

func (s *pricingService) QuoteAI(ctx context.Context, trip *entity.TripRequest) *response.AIQuoteResponse {
	if s.quotes != nil {
		quote, err := s.quotes.Quote(ctx, trip)
		if err == nil {
			return &response.AIQuoteResponse{
				Price:    quote.Price,
				Duration: quote.Duration,
				Distance: quote.Distance,
				Message:  quote.Message,
			}
		}
		s.log.Error("AI quote failed, falling back to quote-on-request", zap.Error(err))
	}

	return &response.AIQuoteResponse{
		Price:    "Sur devis",
		Duration: "À confirmer",
		Distance: "À confirmer",
		Message:  "Impossible de calculer l'estimation automatiquement. Veuillez nous contacter par téléphone pour un devis immédiat.",
	}
}
