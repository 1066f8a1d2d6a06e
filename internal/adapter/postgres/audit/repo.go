// Package audit implements the append-only audit log repository using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type auditRow struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	Action     string     `db:"action"`
	Changes    []byte     `db:"changes"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
// A nil ID is generated and a zero CreatedAt defaults to now() in the database.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	changes := record.Changes
	if changes == nil {
		changes = map[string]any{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal changes: %w", err)
	}

	cols := []string{"id", "user_id", "entity_type", "entity_id", "action", "changes"}
	vals := []any{record.ID, record.UserID, string(record.EntityType), record.EntityID, string(record.Action), changesJSON}
	if !record.CreatedAt.IsZero() {
		cols = append(cols, "created_at")
		vals = append(vals, record.CreatedAt)
	}

	b := postgres.Builder.
		Insert("audit_log").
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id, user_id, entity_type, entity_id, action, changes, created_at")

	var row auditRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}

	return toDomainAuditRecord(row)
}

// Log creates an audit record without returning it.
// Satisfies the auditLogger interfaces of the category and time entry services.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// DeleteBefore removes audit records created before the given time and
// returns how many were deleted.
func (r *Repo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := postgres.Builder.
		Delete("audit_log").
		Where("created_at < ?", before).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete audit records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toDomainAuditRecord(row auditRow) (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         row.ID,
		UserID:     row.UserID,
		EntityType: domain.EntityType(row.EntityType),
		EntityID:   row.EntityID,
		Action:     domain.AuditAction(row.Action),
		CreatedAt:  row.CreatedAt,
	}

	if len(row.Changes) > 0 {
		changes := make(map[string]any)
		if err := json.Unmarshal(row.Changes, &changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal changes: %w", row.ID, err)
		}
		record.Changes = changes
	}

	return record, nil
}
