package category

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// CreateArea inserts a new area. A nil ID is generated.
// Returns domain.ErrAlreadyExists if an active area with the same name exists.
func (r *Repo) CreateArea(ctx context.Context, area domain.Area) (*domain.Area, error) {
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}

	b := postgres.Builder.
		Insert("areas").
		Columns("id", "user_id", "name", "color").
		Values(area.ID, area.UserID, area.Name, area.Color).
		Suffix(returning(areaColumns))

	var row areaRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "area", area.ID)
	}

	a := row.toDomain()
	return &a, nil
}

// GetArea returns an area owned by userID, archived or not.
func (r *Repo) GetArea(ctx context.Context, userID, areaID uuid.UUID) (*domain.Area, error) {
	b := postgres.Builder.
		Select(areaColumns...).
		From("areas").
		Where(sq.Eq{"id": areaID, "user_id": userID})

	var row areaRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "area", areaID)
	}

	a := row.toDomain()
	return &a, nil
}

// ListAreas returns the user's active areas in creation order.
func (r *Repo) ListAreas(ctx context.Context, userID uuid.UUID) ([]domain.Area, error) {
	b := postgres.Builder.
		Select(areaColumns...).
		From("areas").
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		OrderBy("created_at", "id")

	var rows []areaRow
	if err := postgres.Select(ctx, r.q(ctx), &rows, b); err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}

	return mapRows(rows, areaRow.toDomain), nil
}

// CountAreas returns the number of active areas of a user.
func (r *Repo) CountAreas(ctx context.Context, userID uuid.UUID) (int, error) {
	b := postgres.Builder.
		Select("count(*)").
		From("areas").
		Where(sq.Eq{"user_id": userID, "is_active": true})

	n, err := postgres.Count(ctx, r.q(ctx), b)
	if err != nil {
		return 0, fmt.Errorf("count areas: %w", err)
	}
	return n, nil
}

// UpdateArea applies a partial update to an active area.
// Returns domain.ErrNotFound if the area does not exist, is archived, or
// belongs to another user.
func (r *Repo) UpdateArea(ctx context.Context, userID, areaID uuid.UUID, params domain.AreaUpdateParams) (*domain.Area, error) {
	if params.Name == nil && params.Color == nil {
		return r.GetArea(ctx, userID, areaID)
	}

	b := postgres.Builder.
		Update("areas").
		Where(sq.Eq{"id": areaID, "user_id": userID, "is_active": true}).
		Suffix(returning(areaColumns))
	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.Color != nil {
		b = b.Set("color", *params.Color)
	}

	var row areaRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "area", areaID)
	}

	a := row.toDomain()
	return &a, nil
}

const archiveAreaSQL = `
WITH a AS (
    UPDATE areas SET is_active = false
    WHERE id = $1 AND user_id = $2 AND is_active
    RETURNING id
), f AS (
    UPDATE fields SET is_active = false
    WHERE area_id IN (SELECT id FROM a) AND is_active
    RETURNING id
), x AS (
    UPDATE activities SET is_active = false
    WHERE field_id IN (SELECT id FROM f) AND is_active
    RETURNING id
)
SELECT (SELECT count(*) FROM a), (SELECT count(*) FROM f), (SELECT count(*) FROM x)`

// ArchiveArea deactivates an area together with its active fields and their
// activities. Returns domain.ErrNotFound if no active area matched.
func (r *Repo) ArchiveArea(ctx context.Context, userID, areaID uuid.UUID) (domain.ArchiveSummary, error) {
	var s domain.ArchiveSummary
	err := r.q(ctx).QueryRow(ctx, archiveAreaSQL, areaID, userID).Scan(&s.Areas, &s.Fields, &s.Activities)
	if err != nil {
		return domain.ArchiveSummary{}, postgres.MapError(err, "area", areaID)
	}
	if s.Areas == 0 {
		return domain.ArchiveSummary{}, fmt.Errorf("area %s: %w", areaID, domain.ErrNotFound)
	}
	return s, nil
}
