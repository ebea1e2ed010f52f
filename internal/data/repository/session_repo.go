package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"driver-montblanc/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.BookingSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error)
	Update(ctx context.Context, session *entity.BookingSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	CleanExpiredSessions(ctx context.Context) int
	StartCleanup(interval time.Duration) (stop func())
}

type sessionEntry struct {
	session   *entity.BookingSession
	expiresAt time.Time
}

// sessionRepository keeps booking sessions in memory only. Nothing is ever
// written to disk or a database; an expired or deleted session is gone.
type sessionRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]sessionEntry
	ttl     time.Duration
	log     *zap.Logger
}

func NewSessionRepository(ttl time.Duration, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		entries: make(map[uuid.UUID]sessionEntry),
		ttl:     ttl,
		log:     log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.BookingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	r.entries[session.ID] = sessionEntry{
		session:   session.Clone(),
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, fmt.Errorf("booking session %s not found", id)
	}

	return entry.session.Clone(), nil
}

// Update replaces the stored session and slides its expiry window, so a
// session stays alive as long as the visitor keeps progressing.
func (r *sessionRepository) Update(ctx context.Context, session *entity.BookingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[session.ID]
	if !ok || time.Now().After(entry.expiresAt) {
		return fmt.Errorf("booking session %s not found", session.ID)
	}

	r.entries[session.ID] = sessionEntry{
		session:   session.Clone(),
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
	return nil
}

func (r *sessionRepository) CleanExpiredSessions(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}

	if removed > 0 {
		r.log.Info("Cleaned expired sessions", zap.Int("removed", removed))
	}
	return removed
}

// StartCleanup launches the eviction janitor and returns a stop function.
func (r *sessionRepository) StartCleanup(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				r.CleanExpiredSessions(context.Background())
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
