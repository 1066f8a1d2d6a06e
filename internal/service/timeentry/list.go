package timeentry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// ListResult is one page of entries plus the total match count.
type ListResult struct {
	Entries []domain.TimeEntry
	Total   int
}

// ListEntries returns the caller's entries, newest first.
func (s *Service) ListEntries(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	entries, total, err := s.entries.List(ctx, userID, input.filter())
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	return &ListResult{Entries: entries, Total: total}, nil
}

// Summary is the tracked time per area over a period.
type Summary struct {
	From  *time.Time
	To    *time.Time
	Areas []domain.AreaTotal
	Total time.Duration
}

// Summary aggregates the caller's time per area, largest total first.
func (s *Service) Summary(ctx context.Context, input SummaryInput) (*Summary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	areas, err := s.entries.SummaryByArea(ctx, userID, input.From, input.To)
	if err != nil {
		return nil, fmt.Errorf("summary by area: %w", err)
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Total > areas[j].Total
	})

	out := &Summary{From: input.From, To: input.To, Areas: areas}
	for _, a := range areas {
		out.Total += a.Total
	}
	return out, nil
}

// DeleteEntry removes one of the caller's entries.
func (s *Service) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if entryID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	entry, err := s.entries.GetByID(ctx, userID, entryID)
	if err != nil {
		return fmt.Errorf("get time entry: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.entries.Delete(txCtx, userID, entryID); deleteErr != nil {
			return fmt.Errorf("delete time entry: %w", deleteErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeTimeEntry,
			EntityID:   &entryID,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"activity_id": map[string]any{"old": entry.ActivityID.String()},
				"duration":    map[string]any{"old": domain.FormatClock(entry.Duration)},
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "time entry deleted",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", entryID.String()),
	)

	return nil
}
