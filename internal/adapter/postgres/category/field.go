package category

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// CreateField inserts a new field. The caller checks that the area is owned
// and active.
func (r *Repo) CreateField(ctx context.Context, field domain.Field) (*domain.Field, error) {
	if field.ID == uuid.Nil {
		field.ID = uuid.New()
	}

	b := postgres.Builder.
		Insert("fields").
		Columns("id", "user_id", "area_id", "name").
		Values(field.ID, field.UserID, field.AreaID, field.Name).
		Suffix(returning(fieldColumns))

	var row fieldRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "field", field.ID)
	}

	f := row.toDomain()
	return &f, nil
}

// GetField returns a field owned by userID, archived or not.
func (r *Repo) GetField(ctx context.Context, userID, fieldID uuid.UUID) (*domain.Field, error) {
	b := postgres.Builder.
		Select(fieldColumns...).
		From("fields").
		Where(sq.Eq{"id": fieldID, "user_id": userID})

	var row fieldRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "field", fieldID)
	}

	f := row.toDomain()
	return &f, nil
}

// ListFields returns the active fields of one area in creation order.
func (r *Repo) ListFields(ctx context.Context, userID, areaID uuid.UUID) ([]domain.Field, error) {
	return r.listFields(ctx, sq.Eq{"user_id": userID, "area_id": areaID, "is_active": true})
}

// ListUserFields returns all active fields of a user in creation order.
func (r *Repo) ListUserFields(ctx context.Context, userID uuid.UUID) ([]domain.Field, error) {
	return r.listFields(ctx, sq.Eq{"user_id": userID, "is_active": true})
}

func (r *Repo) listFields(ctx context.Context, where sq.Eq) ([]domain.Field, error) {
	b := postgres.Builder.
		Select(fieldColumns...).
		From("fields").
		Where(where).
		OrderBy("created_at", "id")

	var rows []fieldRow
	if err := postgres.Select(ctx, r.q(ctx), &rows, b); err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	return mapRows(rows, fieldRow.toDomain), nil
}

// CountFields returns the number of active fields in an area.
func (r *Repo) CountFields(ctx context.Context, userID, areaID uuid.UUID) (int, error) {
	b := postgres.Builder.
		Select("count(*)").
		From("fields").
		Where(sq.Eq{"user_id": userID, "area_id": areaID, "is_active": true})

	n, err := postgres.Count(ctx, r.q(ctx), b)
	if err != nil {
		return 0, fmt.Errorf("count fields: %w", err)
	}
	return n, nil
}

// RenameField changes the name of an active field.
func (r *Repo) RenameField(ctx context.Context, userID, fieldID uuid.UUID, name string) (*domain.Field, error) {
	b := postgres.Builder.
		Update("fields").
		Set("name", name).
		Where(sq.Eq{"id": fieldID, "user_id": userID, "is_active": true}).
		Suffix(returning(fieldColumns))

	var row fieldRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "field", fieldID)
	}

	f := row.toDomain()
	return &f, nil
}

const archiveFieldSQL = `
WITH f AS (
    UPDATE fields SET is_active = false
    WHERE id = $1 AND user_id = $2 AND is_active
    RETURNING id
), x AS (
    UPDATE activities SET is_active = false
    WHERE field_id IN (SELECT id FROM f) AND is_active
    RETURNING id
)
SELECT (SELECT count(*) FROM f), (SELECT count(*) FROM x)`

// ArchiveField deactivates a field and its active activities.
// Returns domain.ErrNotFound if no active field matched.
func (r *Repo) ArchiveField(ctx context.Context, userID, fieldID uuid.UUID) (domain.ArchiveSummary, error) {
	var s domain.ArchiveSummary
	err := r.q(ctx).QueryRow(ctx, archiveFieldSQL, fieldID, userID).Scan(&s.Fields, &s.Activities)
	if err != nil {
		return domain.ArchiveSummary{}, postgres.MapError(err, "field", fieldID)
	}
	if s.Fields == 0 {
		return domain.ArchiveSummary{}, fmt.Errorf("field %s: %w", fieldID, domain.ErrNotFound)
	}
	return s, nil
}
