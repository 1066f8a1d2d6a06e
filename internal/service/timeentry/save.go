package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// SaveDraft persists a complete draft as a time entry. The selected
// activity, field and area must form one chain owned by the caller; archived
// nodes are rejected.
func (s *Service) SaveDraft(ctx context.Context, draft domain.EntryDraft) (*domain.TimeEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	date, dur, err := validateDraft(draft)
	if err != nil {
		return nil, err
	}

	path, err := s.loadPath(ctx, userID, draft.Selection)
	if err != nil {
		return nil, err
	}

	entry := domain.TimeEntry{
		UserID:      userID,
		AreaID:      path.Area.ID,
		FieldID:     path.Field.ID,
		ActivityID:  path.Activity.ID,
		Date:        date,
		StartTime:   normalizedTime(draft.StartTime),
		EndTime:     normalizedTime(draft.EndTime),
		Duration:    dur,
		Description: draft.Description,
	}

	var saved *domain.TimeEntry
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		saved, createErr = s.entries.Create(txCtx, entry)
		if createErr != nil {
			return fmt.Errorf("create time entry: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeTimeEntry,
			EntityID:   &saved.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"activity_id": map[string]any{"new": path.Activity.ID.String()},
				"date":        map[string]any{"new": draft.Date},
				"duration":    map[string]any{"new": domain.FormatClock(dur)},
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "time entry saved",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", saved.ID.String()),
		slog.String("activity_id", path.Activity.ID.String()),
		slog.String("duration", domain.FormatClock(dur)),
	)

	return saved, nil
}

// loadPath walks activity -> field -> area and checks that the result matches
// the selection exactly.
func (s *Service) loadPath(ctx context.Context, userID uuid.UUID, sel domain.Selection) (domain.CategoryPath, error) {
	act, err := s.categories.GetActivity(ctx, userID, *sel.ActivityID)
	if err != nil {
		return domain.CategoryPath{}, refError("activity_id", "get activity", err)
	}
	field, err := s.categories.GetField(ctx, userID, act.FieldID)
	if err != nil {
		return domain.CategoryPath{}, refError("field_id", "get field", err)
	}
	area, err := s.categories.GetArea(ctx, userID, field.AreaID)
	if err != nil {
		return domain.CategoryPath{}, refError("area_id", "get area", err)
	}

	path := domain.CategoryPath{Area: *area, Field: *field, Activity: *act}
	if !path.Consistent(userID) || !path.Selection().Equal(sel) {
		return domain.CategoryPath{}, domain.NewValidationError("selection", "inconsistent category path")
	}
	if !act.IsActive || !field.IsActive || !area.IsActive {
		return domain.CategoryPath{}, domain.NewValidationError("selection", "category archived")
	}
	return path, nil
}

func refError(field, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError(field, "not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func normalizedTime(s string) *string {
	if s == "" {
		return nil
	}
	n, err := domain.NormalizeTimeOfDay(s)
	if err != nil {
		return nil
	}
	return &n
}
