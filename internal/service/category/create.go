package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// CreateArea creates a new top-level area for the authenticated user.
func (s *Service) CreateArea(ctx context.Context, input CreateAreaInput) (*domain.Area, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := cleanName(input.Name)
	color := strings.ToLower(input.Color)
	if color == "" {
		color = domain.DefaultAreaColor
	}

	var area *domain.Area
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		count, err := s.repo.CountAreas(txCtx, userID)
		if err != nil {
			return fmt.Errorf("count areas: %w", err)
		}
		if count >= s.limits.MaxAreasPerUser {
			return domain.NewValidationError("areas", fmt.Sprintf("limit reached (max %d)", s.limits.MaxAreasPerUser))
		}

		siblings, err := s.repo.ListAreas(txCtx, userID)
		if err != nil {
			return fmt.Errorf("list areas: %w", err)
		}
		if nameTaken(siblings, areaKey, name, uuid.Nil) {
			return fmt.Errorf("area %q: %w", name, domain.ErrAlreadyExists)
		}

		area, err = s.repo.CreateArea(txCtx, domain.Area{UserID: userID, Name: name, Color: color})
		if err != nil {
			return fmt.Errorf("create area: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeArea, area.ID, domain.AuditActionCreate, map[string]any{
			"name":  map[string]any{"new": name},
			"color": map[string]any{"new": color},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "area created",
		slog.String("user_id", userID.String()),
		slog.String("area_id", area.ID.String()),
		slog.String("name", name),
	)

	return area, nil
}

// CreateField creates a field under one of the user's active areas.
func (s *Service) CreateField(ctx context.Context, input CreateFieldInput) (*domain.Field, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := cleanName(input.Name)

	var field *domain.Field
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.activeArea(txCtx, userID, input.AreaID); err != nil {
			return err
		}

		count, err := s.repo.CountFields(txCtx, userID, input.AreaID)
		if err != nil {
			return fmt.Errorf("count fields: %w", err)
		}
		if count >= s.limits.MaxFieldsPerArea {
			return domain.NewValidationError("fields", fmt.Sprintf("limit reached (max %d)", s.limits.MaxFieldsPerArea))
		}

		siblings, err := s.repo.ListFields(txCtx, userID, input.AreaID)
		if err != nil {
			return fmt.Errorf("list fields: %w", err)
		}
		if nameTaken(siblings, fieldKey, name, uuid.Nil) {
			return fmt.Errorf("field %q: %w", name, domain.ErrAlreadyExists)
		}

		field, err = s.repo.CreateField(txCtx, domain.Field{UserID: userID, AreaID: input.AreaID, Name: name})
		if err != nil {
			return fmt.Errorf("create field: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeField, field.ID, domain.AuditActionCreate, map[string]any{
			"name":    map[string]any{"new": name},
			"area_id": map[string]any{"new": input.AreaID.String()},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "field created",
		slog.String("user_id", userID.String()),
		slog.String("field_id", field.ID.String()),
		slog.String("area_id", input.AreaID.String()),
		slog.String("name", name),
	)

	return field, nil
}

// CreateActivity creates an activity under one of the user's active fields.
// The field's area must be active too.
func (s *Service) CreateActivity(ctx context.Context, input CreateActivityInput) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := cleanName(input.Name)

	var act *domain.Activity
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		field, err := s.activeField(txCtx, userID, input.FieldID)
		if err != nil {
			return err
		}
		if _, err := s.activeArea(txCtx, userID, field.AreaID); err != nil {
			return err
		}

		count, err := s.repo.CountActivities(txCtx, userID, input.FieldID)
		if err != nil {
			return fmt.Errorf("count activities: %w", err)
		}
		if count >= s.limits.MaxActivitiesPerField {
			return domain.NewValidationError("activities", fmt.Sprintf("limit reached (max %d)", s.limits.MaxActivitiesPerField))
		}

		siblings, err := s.repo.ListActivities(txCtx, userID, input.FieldID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}
		if nameTaken(siblings, activityKey, name, uuid.Nil) {
			return fmt.Errorf("activity %q: %w", name, domain.ErrAlreadyExists)
		}

		act, err = s.repo.CreateActivity(txCtx, domain.Activity{UserID: userID, FieldID: input.FieldID, Name: name})
		if err != nil {
			return fmt.Errorf("create activity: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeActivity, act.ID, domain.AuditActionCreate, map[string]any{
			"name":     map[string]any{"new": name},
			"field_id": map[string]any{"new": input.FieldID.String()},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "activity created",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", act.ID.String()),
		slog.String("field_id", input.FieldID.String()),
		slog.String("name", name),
	)

	return act, nil
}

// NewActivity is CreateActivity with positional arguments, used by the
// resolver's create-new flow.
func (s *Service) NewActivity(ctx context.Context, fieldID uuid.UUID, name string) (*domain.Activity, error) {
	return s.CreateActivity(ctx, CreateActivityInput{FieldID: fieldID, Name: name})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// activeArea loads a parent area. A missing, foreign or archived area is the
// caller's input error, not a missing resource.
func (s *Service) activeArea(ctx context.Context, userID, areaID uuid.UUID) (*domain.Area, error) {
	area, err := s.repo.GetArea(ctx, userID, areaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("area_id", "not found")
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	if !area.IsActive {
		return nil, domain.NewValidationError("area_id", "archived")
	}
	return area, nil
}

func (s *Service) activeField(ctx context.Context, userID, fieldID uuid.UUID) (*domain.Field, error) {
	field, err := s.repo.GetField(ctx, userID, fieldID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("field_id", "not found")
		}
		return nil, fmt.Errorf("get field: %w", err)
	}
	if !field.IsActive {
		return nil, domain.NewValidationError("field_id", "archived")
	}
	return field, nil
}

func (s *Service) logAudit(
	ctx context.Context,
	userID uuid.UUID,
	entity domain.EntityType,
	id uuid.UUID,
	action domain.AuditAction,
	changes map[string]any,
) error {
	if err := s.audit.Log(ctx, domain.AuditRecord{
		UserID:     userID,
		EntityType: entity,
		EntityID:   &id,
		Action:     action,
		Changes:    changes,
	}); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

func areaKey(a domain.Area) (uuid.UUID, string)         { return a.ID, a.Name }
func fieldKey(f domain.Field) (uuid.UUID, string)       { return f.ID, f.Name }
func activityKey(a domain.Activity) (uuid.UUID, string) { return a.ID, a.Name }

// nameTaken reports whether a sibling other than self already uses name,
// compared case-insensitively.
func nameTaken[T any](siblings []T, key func(T) (uuid.UUID, string), name string, self uuid.UUID) bool {
	for _, sib := range siblings {
		id, n := key(sib)
		if id != self && domain.SameName(n, name) {
			return true
		}
	}
	return false
}
