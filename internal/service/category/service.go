package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/config"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

type categoryRepo interface {
	CreateArea(ctx context.Context, area domain.Area) (*domain.Area, error)
	GetArea(ctx context.Context, userID, areaID uuid.UUID) (*domain.Area, error)
	ListAreas(ctx context.Context, userID uuid.UUID) ([]domain.Area, error)
	CountAreas(ctx context.Context, userID uuid.UUID) (int, error)
	UpdateArea(ctx context.Context, userID, areaID uuid.UUID, params domain.AreaUpdateParams) (*domain.Area, error)
	ArchiveArea(ctx context.Context, userID, areaID uuid.UUID) (domain.ArchiveSummary, error)

	CreateField(ctx context.Context, field domain.Field) (*domain.Field, error)
	GetField(ctx context.Context, userID, fieldID uuid.UUID) (*domain.Field, error)
	ListFields(ctx context.Context, userID, areaID uuid.UUID) ([]domain.Field, error)
	ListUserFields(ctx context.Context, userID uuid.UUID) ([]domain.Field, error)
	CountFields(ctx context.Context, userID, areaID uuid.UUID) (int, error)
	RenameField(ctx context.Context, userID, fieldID uuid.UUID, name string) (*domain.Field, error)
	ArchiveField(ctx context.Context, userID, fieldID uuid.UUID) (domain.ArchiveSummary, error)

	CreateActivity(ctx context.Context, act domain.Activity) (*domain.Activity, error)
	GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error)
	ListActivities(ctx context.Context, userID, fieldID uuid.UUID) ([]domain.Activity, error)
	ListUserActivities(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error)
	CountActivities(ctx context.Context, userID, fieldID uuid.UUID) (int, error)
	RenameActivity(ctx context.Context, userID, activityID uuid.UUID, name string) (*domain.Activity, error)
	ArchiveActivity(ctx context.Context, userID, activityID uuid.UUID) (domain.ArchiveSummary, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the user's Area/Field/Activity hierarchy.
type Service struct {
	repo   categoryRepo
	audit  auditLogger
	tx     txManager
	limits config.CategoryConfig
	log    *slog.Logger
}

// NewService creates a new category Service.
func NewService(
	log *slog.Logger,
	repo categoryRepo,
	audit auditLogger,
	tx txManager,
	limits config.CategoryConfig,
) *Service {
	return &Service{
		repo:   repo,
		audit:  audit,
		tx:     tx,
		limits: limits,
		log:    log.With("service", "category"),
	}
}

// cleanName trims a name and collapses inner whitespace, keeping case.
func cleanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
