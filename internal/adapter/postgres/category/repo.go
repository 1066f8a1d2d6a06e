// Package category implements the category tree repository (areas, fields,
// activities) using PostgreSQL. Every query is scoped by owner; list queries
// return active rows only, ordered by creation.
package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new category repository. db is usually the pool; inside
// RunInTx the transaction from context takes precedence.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Row types
// ---------------------------------------------------------------------------

var (
	areaColumns     = []string{"id", "user_id", "name", "color", "is_active", "created_at", "updated_at"}
	fieldColumns    = []string{"id", "user_id", "area_id", "name", "is_active", "created_at", "updated_at"}
	activityColumns = []string{"id", "user_id", "field_id", "name", "is_active", "created_at", "updated_at"}
)

type areaRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r areaRow) toDomain() domain.Area {
	return domain.Area{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Color:     r.Color,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type fieldRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	AreaID    uuid.UUID `db:"area_id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r fieldRow) toDomain() domain.Field {
	return domain.Field{
		ID:        r.ID,
		UserID:    r.UserID,
		AreaID:    r.AreaID,
		Name:      r.Name,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type activityRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	FieldID   uuid.UUID `db:"field_id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r activityRow) toDomain() domain.Activity {
	return domain.Activity{
		ID:        r.ID,
		UserID:    r.UserID,
		FieldID:   r.FieldID,
		Name:      r.Name,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func mapRows[R any, T any](rows []R, conv func(R) T) []T {
	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = conv(row)
	}
	return out
}

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}
