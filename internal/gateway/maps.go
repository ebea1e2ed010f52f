package gateway

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// TravelEstimator looks up driving duration and distance for a route with no
// fixed tariff, so the estimate can carry real labels instead of
// placeholders.
type TravelEstimator interface {
	TravelEstimate(ctx context.Context, origin, destination string) (duration, distance string, err error)
}

type mapsEstimator struct {
	client *maps.Client
	log    *zap.Logger
}

func NewMapsEstimator(apiKey string, log *zap.Logger) (TravelEstimator, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &mapsEstimator{
		client: client,
		log:    log.With(zap.String("gateway", "maps")),
	}, nil
}

func (e *mapsEstimator) TravelEstimate(ctx context.Context, origin, destination string) (string, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "fr",
		Region:      "fr", // bias results to the French Alps service area
	}

	routes, _, err := e.client.Directions(ctx, r)
	if err != nil {
		return "", "", fmt.Errorf("maps directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return "", "", fmt.Errorf("no route found between %q and %q", origin, destination)
	}

	leg := routes[0].Legs[0]
	return formatDurationFR(leg.Duration), leg.Distance.HumanReadable, nil
}

func formatDurationFR(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh %02dmin", hours, minutes)
}
