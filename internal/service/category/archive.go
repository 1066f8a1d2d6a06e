package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// ArchiveArea soft-deletes an area with all its fields and activities.
// Archived nodes disappear from every listing and from resolution; time
// entries referencing them are kept.
func (s *Service) ArchiveArea(ctx context.Context, areaID uuid.UUID) (domain.ArchiveSummary, error) {
	return s.archive(ctx, domain.EntityTypeArea, areaID, s.repo.ArchiveArea)
}

// ArchiveField soft-deletes a field and its activities.
func (s *Service) ArchiveField(ctx context.Context, fieldID uuid.UUID) (domain.ArchiveSummary, error) {
	return s.archive(ctx, domain.EntityTypeField, fieldID, s.repo.ArchiveField)
}

// ArchiveActivity soft-deletes one activity.
func (s *Service) ArchiveActivity(ctx context.Context, activityID uuid.UUID) (domain.ArchiveSummary, error) {
	return s.archive(ctx, domain.EntityTypeActivity, activityID, s.repo.ArchiveActivity)
}

func (s *Service) archive(
	ctx context.Context,
	entity domain.EntityType,
	id uuid.UUID,
	fn func(ctx context.Context, userID, id uuid.UUID) (domain.ArchiveSummary, error),
) (domain.ArchiveSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ArchiveSummary{}, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return domain.ArchiveSummary{}, domain.NewValidationError("id", "required")
	}

	var summary domain.ArchiveSummary
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		summary, err = fn(txCtx, userID, id)
		if err != nil {
			return fmt.Errorf("archive %s: %w", entity, err)
		}

		return s.logAudit(txCtx, userID, entity, id, domain.AuditActionArchive, map[string]any{
			"areas":      summary.Areas,
			"fields":     summary.Fields,
			"activities": summary.Activities,
		})
	})
	if err != nil {
		return domain.ArchiveSummary{}, err
	}

	s.log.InfoContext(ctx, "category archived",
		slog.String("user_id", userID.String()),
		slog.String("entity_type", entity.String()),
		slog.String("entity_id", id.String()),
		slog.Int("fields", summary.Fields),
		slog.Int("activities", summary.Activities),
	)

	return summary, nil
}
