package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/config"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

// catalog reads one user's category tree. List methods return active rows
// only, filtered by owner. Get methods return archived rows too.
type catalog interface {
	ListAreas(ctx context.Context, userID uuid.UUID) ([]domain.Area, error)
	ListFields(ctx context.Context, userID, areaID uuid.UUID) ([]domain.Field, error)
	ListActivities(ctx context.Context, userID, fieldID uuid.UUID) ([]domain.Activity, error)
	ListUserActivities(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error)
	GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error)
	GetField(ctx context.Context, userID, fieldID uuid.UUID) (*domain.Field, error)
	GetArea(ctx context.Context, userID, areaID uuid.UUID) (*domain.Area, error)
}

// activityCreator persists a new activity after checking that the field is
// owned by the caller and active.
type activityCreator interface {
	NewActivity(ctx context.Context, fieldID uuid.UUID, name string) (*domain.Activity, error)
}

type recorder interface {
	RecordResolution(out *domain.Outcome)
}

// Service resolves parsed voice fragments against the caller's category tree
// and manages confirm/create sessions.
type Service struct {
	engine   *engine
	catalog  catalog
	creator  activityCreator
	rec      recorder
	sessions *SessionStore
	log      *slog.Logger
}

// NewService creates a new resolver Service. rec may be nil.
func NewService(
	log *slog.Logger,
	cat catalog,
	creator activityCreator,
	cfg config.ResolverConfig,
	rec recorder,
) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	log = log.With("service", "resolver")
	m := NewMatcher(ThresholdsFromConfig(cfg), DistanceByName(cfg.Distance))

	return &Service{
		engine:   newEngine(cat, m, log),
		catalog:  cat,
		creator:  creator,
		rec:      rec,
		sessions: NewSessionStore(cfg.SessionTTL, cfg.MaxSessionsPerUser, time.Now),
		log:      log,
	}
}

// Sessions exposes the session store, mainly so the caller can run its sweeper.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

type nopRecorder struct{}

func (nopRecorder) RecordResolution(*domain.Outcome) {}
