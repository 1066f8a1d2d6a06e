package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// UpdateArea renames and/or recolors an active area.
func (s *Service) UpdateArea(ctx context.Context, input UpdateAreaInput) (*domain.Area, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.AreaUpdateParams{}
	if input.Name != nil {
		name := cleanName(*input.Name)
		params.Name = &name
	}
	if input.Color != nil {
		color := strings.ToLower(*input.Color)
		params.Color = &color
	}

	var updated *domain.Area
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.repo.GetArea(txCtx, userID, input.AreaID)
		if err != nil {
			return fmt.Errorf("get area: %w", err)
		}
		if !old.IsActive {
			return fmt.Errorf("area %s: %w", input.AreaID, domain.ErrNotFound)
		}

		if params.Name != nil {
			siblings, err := s.repo.ListAreas(txCtx, userID)
			if err != nil {
				return fmt.Errorf("list areas: %w", err)
			}
			if nameTaken(siblings, areaKey, *params.Name, input.AreaID) {
				return fmt.Errorf("area %q: %w", *params.Name, domain.ErrAlreadyExists)
			}
		}

		updated, err = s.repo.UpdateArea(txCtx, userID, input.AreaID, params)
		if err != nil {
			return fmt.Errorf("update area: %w", err)
		}

		changes := make(map[string]any)
		if old.Name != updated.Name {
			changes["name"] = map[string]any{"old": old.Name, "new": updated.Name}
		}
		if old.Color != updated.Color {
			changes["color"] = map[string]any{"old": old.Color, "new": updated.Color}
		}
		if len(changes) == 0 {
			return nil
		}
		return s.logAudit(txCtx, userID, domain.EntityTypeArea, input.AreaID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "area updated",
		slog.String("user_id", userID.String()),
		slog.String("area_id", input.AreaID.String()),
	)

	return updated, nil
}

// RenameField renames an active field. The new name must be unique within
// the field's area.
func (s *Service) RenameField(ctx context.Context, input RenameInput) (*domain.Field, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := cleanName(input.Name)

	var updated *domain.Field
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.repo.GetField(txCtx, userID, input.ID)
		if err != nil {
			return fmt.Errorf("get field: %w", err)
		}
		if !old.IsActive {
			return fmt.Errorf("field %s: %w", input.ID, domain.ErrNotFound)
		}
		if old.Name == name {
			updated = old
			return nil
		}

		siblings, err := s.repo.ListFields(txCtx, userID, old.AreaID)
		if err != nil {
			return fmt.Errorf("list fields: %w", err)
		}
		if nameTaken(siblings, fieldKey, name, input.ID) {
			return fmt.Errorf("field %q: %w", name, domain.ErrAlreadyExists)
		}

		updated, err = s.repo.RenameField(txCtx, userID, input.ID, name)
		if err != nil {
			return fmt.Errorf("rename field: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeField, input.ID, domain.AuditActionUpdate, map[string]any{
			"name": map[string]any{"old": old.Name, "new": name},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "field renamed",
		slog.String("user_id", userID.String()),
		slog.String("field_id", input.ID.String()),
	)

	return updated, nil
}

// RenameActivity renames an active activity. The new name must be unique
// within the activity's field.
func (s *Service) RenameActivity(ctx context.Context, input RenameInput) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := cleanName(input.Name)

	var updated *domain.Activity
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.repo.GetActivity(txCtx, userID, input.ID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		if !old.IsActive {
			return fmt.Errorf("activity %s: %w", input.ID, domain.ErrNotFound)
		}
		if old.Name == name {
			updated = old
			return nil
		}

		siblings, err := s.repo.ListActivities(txCtx, userID, old.FieldID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}
		if nameTaken(siblings, activityKey, name, input.ID) {
			return fmt.Errorf("activity %q: %w", name, domain.ErrAlreadyExists)
		}

		updated, err = s.repo.RenameActivity(txCtx, userID, input.ID, name)
		if err != nil {
			return fmt.Errorf("rename activity: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeActivity, input.ID, domain.AuditActionUpdate, map[string]any{
			"name": map[string]any{"old": old.Name, "new": name},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "activity renamed",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", input.ID.String()),
	)

	return updated, nil
}
