package repository

import (
	"time"

	"go.uber.org/zap"
)

type Repository struct {
	Session  SessionRepository
	Route    RouteRepository
	Location LocationRepository
}

func NewRepository(sessionTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Session:  NewSessionRepository(sessionTTL, log),
		Route:    NewRouteRepository(log),
		Location: NewLocationRepository(),
	}
}
