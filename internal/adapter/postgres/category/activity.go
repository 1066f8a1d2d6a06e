package category

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// CreateActivity inserts a new activity. The caller checks that the field is
// owned and active.
func (r *Repo) CreateActivity(ctx context.Context, act domain.Activity) (*domain.Activity, error) {
	if act.ID == uuid.Nil {
		act.ID = uuid.New()
	}

	b := postgres.Builder.
		Insert("activities").
		Columns("id", "user_id", "field_id", "name").
		Values(act.ID, act.UserID, act.FieldID, act.Name).
		Suffix(returning(activityColumns))

	var row activityRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "activity", act.ID)
	}

	a := row.toDomain()
	return &a, nil
}

// GetActivity returns an activity owned by userID, archived or not.
func (r *Repo) GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	b := postgres.Builder.
		Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"id": activityID, "user_id": userID})

	var row activityRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "activity", activityID)
	}

	a := row.toDomain()
	return &a, nil
}

// ListActivities returns the active activities of one field in creation order.
func (r *Repo) ListActivities(ctx context.Context, userID, fieldID uuid.UUID) ([]domain.Activity, error) {
	return r.listActivities(ctx, sq.Eq{"user_id": userID, "field_id": fieldID, "is_active": true})
}

// ListUserActivities returns every active activity of a user in creation order.
func (r *Repo) ListUserActivities(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	return r.listActivities(ctx, sq.Eq{"user_id": userID, "is_active": true})
}

func (r *Repo) listActivities(ctx context.Context, where sq.Eq) ([]domain.Activity, error) {
	b := postgres.Builder.
		Select(activityColumns...).
		From("activities").
		Where(where).
		OrderBy("created_at", "id")

	var rows []activityRow
	if err := postgres.Select(ctx, r.q(ctx), &rows, b); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return mapRows(rows, activityRow.toDomain), nil
}

// CountActivities returns the number of active activities in a field.
func (r *Repo) CountActivities(ctx context.Context, userID, fieldID uuid.UUID) (int, error) {
	b := postgres.Builder.
		Select("count(*)").
		From("activities").
		Where(sq.Eq{"user_id": userID, "field_id": fieldID, "is_active": true})

	n, err := postgres.Count(ctx, r.q(ctx), b)
	if err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return n, nil
}

// RenameActivity changes the name of an active activity.
func (r *Repo) RenameActivity(ctx context.Context, userID, activityID uuid.UUID, name string) (*domain.Activity, error) {
	b := postgres.Builder.
		Update("activities").
		Set("name", name).
		Where(sq.Eq{"id": activityID, "user_id": userID, "is_active": true}).
		Suffix(returning(activityColumns))

	var row activityRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "activity", activityID)
	}

	a := row.toDomain()
	return &a, nil
}

// ArchiveActivity deactivates one activity.
func (r *Repo) ArchiveActivity(ctx context.Context, userID, activityID uuid.UUID) (domain.ArchiveSummary, error) {
	b := postgres.Builder.
		Update("activities").
		Set("is_active", false).
		Where(sq.Eq{"id": activityID, "user_id": userID, "is_active": true})

	sql, args, err := b.ToSql()
	if err != nil {
		return domain.ArchiveSummary{}, fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return domain.ArchiveSummary{}, postgres.MapError(err, "activity", activityID)
	}
	if tag.RowsAffected() == 0 {
		return domain.ArchiveSummary{}, fmt.Errorf("activity %s: %w", activityID, domain.ErrNotFound)
	}
	return domain.ArchiveSummary{Activities: 1}, nil
}
