package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// engine runs resolutions against one catalog. Sessions get their own engine
// over an overlay catalog so freshly created activities are visible at once.
type engine struct {
	cat     catalog
	matcher Matcher
	log     *slog.Logger
}

func newEngine(cat catalog, m Matcher, log *slog.Logger) *engine {
	return &engine{cat: cat, matcher: m, log: log}
}

func (e *engine) withCatalog(cat catalog) *engine {
	return &engine{cat: cat, matcher: e.matcher, log: e.log}
}

// ---------------------------------------------------------------------------
// Tree lookup
// ---------------------------------------------------------------------------

// TreeMatch is the result of looking an activity up by name and walking its
// parents. Field and Area are nil when that parent could not be determined.
type TreeMatch struct {
	Activity   domain.Activity
	Field      *domain.Field
	Area       *domain.Area
	Confidence float64
	Type       domain.MatchType
}

// Path returns the full path when both parents were found.
func (t TreeMatch) Path() (domain.CategoryPath, bool) {
	if t.Field == nil || t.Area == nil {
		return domain.CategoryPath{}, false
	}
	return domain.CategoryPath{Area: *t.Area, Field: *t.Field, Activity: t.Activity}, true
}

// lookupActivity finds the best matching active activity of userID and walks
// to its field and area. found is false when no activity matched or when a
// parent is missing, archived or owned by someone else; the partial match is
// still returned in that case. Collaborator errors other than not-found are
// returned untouched.
func (e *engine) lookupActivity(ctx context.Context, userID uuid.UUID, name string) (TreeMatch, bool, error) {
	all, err := e.cat.ListUserActivities(ctx, userID)
	if err != nil {
		return TreeMatch{}, false, fmt.Errorf("list activities: %w", err)
	}

	acts := make([]domain.Activity, 0, len(all))
	for _, a := range all {
		if a.IsActive && a.UserID == userID {
			acts = append(acts, a)
		}
	}

	m, ok := FindBestMatch(e.matcher, name, acts, activityName)
	if !ok {
		return TreeMatch{}, false, nil
	}
	tm := TreeMatch{Activity: m.Item, Confidence: m.Confidence, Type: m.Type}

	field, err := e.cat.GetField(ctx, userID, m.Item.FieldID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return tm, false, nil
		}
		return tm, false, fmt.Errorf("get field: %w", err)
	}
	if field.UserID != userID || !field.IsActive {
		e.log.WarnContext(ctx, "activity parent field not usable",
			slog.String("user_id", userID.String()),
			slog.String("activity_id", m.Item.ID.String()),
			slog.String("field_id", field.ID.String()),
		)
		return tm, false, nil
	}
	tm.Field = field

	area, err := e.cat.GetArea(ctx, userID, field.AreaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return tm, false, nil
		}
		return tm, false, fmt.Errorf("get area: %w", err)
	}
	if area.UserID != userID || !area.IsActive {
		e.log.WarnContext(ctx, "field parent area not usable",
			slog.String("user_id", userID.String()),
			slog.String("field_id", field.ID.String()),
			slog.String("area_id", area.ID.String()),
		)
		return tm, false, nil
	}
	tm.Area = area

	return tm, true, nil
}
