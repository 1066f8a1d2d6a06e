package category

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

const activityPathsSQL = `
SELECT
    x.id AS activity_id, x.name AS activity_name, x.is_active AS activity_active,
    x.created_at AS activity_created_at, x.updated_at AS activity_updated_at,
    f.id AS field_id, f.name AS field_name, f.is_active AS field_active,
    a.id AS area_id, a.name AS area_name, a.color AS area_color, a.is_active AS area_active
FROM activities x
JOIN fields f ON f.id = x.field_id AND f.user_id = x.user_id
JOIN areas a ON a.id = f.area_id AND a.user_id = f.user_id
WHERE x.user_id = $1 AND x.id = ANY($2::uuid[])`

type pathRow struct {
	ActivityID        uuid.UUID `db:"activity_id"`
	ActivityName      string    `db:"activity_name"`
	ActivityActive    bool      `db:"activity_active"`
	ActivityCreatedAt time.Time `db:"activity_created_at"`
	ActivityUpdatedAt time.Time `db:"activity_updated_at"`
	FieldID           uuid.UUID `db:"field_id"`
	FieldName         string    `db:"field_name"`
	FieldActive       bool      `db:"field_active"`
	AreaID            uuid.UUID `db:"area_id"`
	AreaName          string    `db:"area_name"`
	AreaColor         string    `db:"area_color"`
	AreaActive        bool      `db:"area_active"`
}

// ActivityPaths returns the full category paths of the given activities,
// including archived ones, since stored time entries may still reference
// them. Unknown or foreign IDs are omitted; result order is unspecified.
func (r *Repo) ActivityPaths(ctx context.Context, userID uuid.UUID, activityIDs []uuid.UUID) ([]domain.CategoryPath, error) {
	if len(activityIDs) == 0 {
		return []domain.CategoryPath{}, nil
	}

	var rows []pathRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, activityPathsSQL, userID, activityIDs); err != nil {
		return nil, fmt.Errorf("activity paths: %w", err)
	}

	paths := make([]domain.CategoryPath, len(rows))
	for i, row := range rows {
		paths[i] = domain.CategoryPath{
			Area: domain.Area{
				ID:       row.AreaID,
				UserID:   userID,
				Name:     row.AreaName,
				Color:    row.AreaColor,
				IsActive: row.AreaActive,
			},
			Field: domain.Field{
				ID:       row.FieldID,
				UserID:   userID,
				AreaID:   row.AreaID,
				Name:     row.FieldName,
				IsActive: row.FieldActive,
			},
			Activity: domain.Activity{
				ID:        row.ActivityID,
				UserID:    userID,
				FieldID:   row.FieldID,
				Name:      row.ActivityName,
				IsActive:  row.ActivityActive,
				CreatedAt: row.ActivityCreatedAt,
				UpdatedAt: row.ActivityUpdatedAt,
			},
		}
	}
	return paths, nil
}
