package timeentry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

type entryRepo interface {
	Create(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.TimeEntry, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.TimeEntry, int, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	SummaryByArea(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]domain.AreaTotal, error)
}

// categoryReader loads single category nodes, owner filtered. Archived nodes
// are returned with IsActive=false.
type categoryReader interface {
	GetArea(ctx context.Context, userID, areaID uuid.UUID) (*domain.Area, error)
	GetField(ctx context.Context, userID, fieldID uuid.UUID) (*domain.Field, error)
	GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	MaxEntryDuration = 24 * time.Hour
)

// Service persists resolved drafts as time entries and reports on them.
type Service struct {
	entries    entryRepo
	categories categoryReader
	audit      auditLogger
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new time entry Service.
func NewService(
	log *slog.Logger,
	entries entryRepo,
	categories categoryReader,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		entries:    entries,
		categories: categories,
		audit:      audit,
		tx:         tx,
		log:        log.With("service", "timeentry"),
	}
}
