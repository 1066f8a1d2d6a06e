// Package timeentry implements the time entry repository using PostgreSQL.
package timeentry

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// Repo provides time entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new time entry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

var entryColumns = []string{
	"id", "user_id", "area_id", "field_id", "activity_id", "entry_date",
	"start_time::text AS start_time", "end_time::text AS end_time",
	"duration_seconds", "description", "created_at", "updated_at",
}

type entryRow struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	AreaID          uuid.UUID `db:"area_id"`
	FieldID         uuid.UUID `db:"field_id"`
	ActivityID      uuid.UUID `db:"activity_id"`
	EntryDate       time.Time `db:"entry_date"`
	StartTime       *string   `db:"start_time"`
	EndTime         *string   `db:"end_time"`
	DurationSeconds int       `db:"duration_seconds"`
	Description     string    `db:"description"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r entryRow) toDomain() domain.TimeEntry {
	return domain.TimeEntry{
		ID:          r.ID,
		UserID:      r.UserID,
		AreaID:      r.AreaID,
		FieldID:     r.FieldID,
		ActivityID:  r.ActivityID,
		Date:        r.EntryDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Duration:    time.Duration(r.DurationSeconds) * time.Second,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a time entry. A nil ID is generated. Times are "HH:MM:SS"
// strings or nil.
func (r *Repo) Create(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	b := postgres.Builder.
		Insert("time_entries").
		Columns(
			"id", "user_id", "area_id", "field_id", "activity_id", "entry_date",
			"start_time", "end_time", "duration_seconds", "description",
		).
		Values(
			e.ID, e.UserID, e.AreaID, e.FieldID, e.ActivityID, e.Date,
			timeArg(e.StartTime), timeArg(e.EndTime), int(e.Duration/time.Second), e.Description,
		).
		Suffix(returning())

	var row entryRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "time_entry", e.ID)
	}

	out := row.toDomain()
	return &out, nil
}

// Delete removes an entry. Returns domain.ErrNotFound if it does not exist or
// belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	sql, args, err := postgres.Builder.
		Delete("time_entries").
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "time_entry", entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("time_entry %s: %w", entryID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an entry owned by userID.
func (r *Repo) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.TimeEntry, error) {
	b := postgres.Builder.
		Select(entryColumns...).
		From("time_entries").
		Where(sq.Eq{"id": entryID, "user_id": userID})

	var row entryRow
	if err := postgres.Get(ctx, r.q(ctx), &row, b); err != nil {
		return nil, postgres.MapError(err, "time_entry", entryID)
	}

	out := row.toDomain()
	return &out, nil
}

// List returns the user's entries matching filter, newest first, together
// with the total number of matches ignoring limit and offset.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.TimeEntry, int, error) {
	where := filterWhere(userID, filter, "")

	total, err := postgres.Count(ctx, r.q(ctx), postgres.Builder.
		Select("count(*)").
		From("time_entries").
		Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("count time entries: %w", err)
	}
	if total == 0 {
		return []domain.TimeEntry{}, 0, nil
	}

	b := postgres.Builder.
		Select(entryColumns...).
		From("time_entries").
		Where(where).
		OrderBy("entry_date DESC", "created_at DESC", "id")
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	var rows []entryRow
	if err := postgres.Select(ctx, r.q(ctx), &rows, b); err != nil {
		return nil, 0, fmt.Errorf("list time entries: %w", err)
	}

	entries := make([]domain.TimeEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toDomain()
	}
	return entries, total, nil
}

type areaTotalRow struct {
	AreaID       uuid.UUID `db:"area_id"`
	AreaName     string    `db:"area_name"`
	Color        string    `db:"color"`
	TotalSeconds int64     `db:"total_seconds"`
	Entries      int       `db:"entries"`
}

// SummaryByArea aggregates the user's tracked time per area for the period
// [from, to] (either bound optional), largest total first.
func (r *Repo) SummaryByArea(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]domain.AreaTotal, error) {
	b := postgres.Builder.
		Select(
			"a.id AS area_id", "a.name AS area_name", "a.color AS color",
			"sum(e.duration_seconds) AS total_seconds", "count(*) AS entries",
		).
		From("time_entries e").
		Join("areas a ON a.id = e.area_id").
		Where(filterWhere(userID, domain.EntryFilter{From: from, To: to}, "e.")).
		GroupBy("a.id", "a.name", "a.color").
		OrderBy("total_seconds DESC", "a.name")

	var rows []areaTotalRow
	if err := postgres.Select(ctx, r.q(ctx), &rows, b); err != nil {
		return nil, fmt.Errorf("summary by area: %w", err)
	}

	out := make([]domain.AreaTotal, len(rows))
	for i, row := range rows {
		out[i] = domain.AreaTotal{
			AreaID:   row.AreaID,
			AreaName: row.AreaName,
			Color:    row.Color,
			Total:    time.Duration(row.TotalSeconds) * time.Second,
			Entries:  row.Entries,
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func filterWhere(userID uuid.UUID, f domain.EntryFilter, prefix string) sq.And {
	where := sq.And{sq.Eq{prefix + "user_id": userID}}
	if f.From != nil {
		where = append(where, sq.GtOrEq{prefix + "entry_date": *f.From})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{prefix + "entry_date": *f.To})
	}
	if f.AreaID != nil {
		where = append(where, sq.Eq{prefix + "area_id": *f.AreaID})
	}
	if f.ActivityID != nil {
		where = append(where, sq.Eq{prefix + "activity_id": *f.ActivityID})
	}
	return where
}

func timeArg(s *string) any {
	if s == nil {
		return nil
	}
	return sq.Expr("?::time", *s)
}

func returning() string {
	return "RETURNING " + strings.Join(entryColumns, ", ")
}
