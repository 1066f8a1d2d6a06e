package resolver

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// overlayCatalog layers activities created during a session over the base
// catalog, so the next resolution sees them even if the base is cached or
// lagging.
type overlayCatalog struct {
	base catalog

	mu      sync.RWMutex
	created []domain.Activity
}

func newOverlayCatalog(base catalog) *overlayCatalog {
	return &overlayCatalog{base: base}
}

func (o *overlayCatalog) add(a domain.Activity) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.created {
		if o.created[i].ID == a.ID {
			o.created[i] = a
			return
		}
	}
	o.created = append(o.created, a)
}

func (o *overlayCatalog) ListAreas(ctx context.Context, userID uuid.UUID) ([]domain.Area, error) {
	return o.base.ListAreas(ctx, userID)
}

func (o *overlayCatalog) ListFields(ctx context.Context, userID, areaID uuid.UUID) ([]domain.Field, error) {
	return o.base.ListFields(ctx, userID, areaID)
}

func (o *overlayCatalog) ListActivities(ctx context.Context, userID, fieldID uuid.UUID) ([]domain.Activity, error) {
	acts, err := o.base.ListActivities(ctx, userID, fieldID)
	if err != nil {
		return nil, err
	}
	return o.merge(ctx, userID, acts, func(a domain.Activity) bool {
		return a.FieldID == fieldID
	})
}

func (o *overlayCatalog) ListUserActivities(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	acts, err := o.base.ListUserActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return o.merge(ctx, userID, acts, func(domain.Activity) bool { return true })
}

func (o *overlayCatalog) GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	return o.base.GetActivity(ctx, userID, activityID)
}

func (o *overlayCatalog) GetField(ctx context.Context, userID, fieldID uuid.UUID) (*domain.Field, error) {
	return o.base.GetField(ctx, userID, fieldID)
}

func (o *overlayCatalog) GetArea(ctx context.Context, userID, areaID uuid.UUID) (*domain.Area, error) {
	return o.base.GetArea(ctx, userID, areaID)
}

// merge appends created activities accepted by keep that the base list does
// not contain yet. Each one is re-read from the base first and evicted once
// it is archived. Activities the base list already returns are evicted too:
// from then on the base alone decides whether they are visible.
func (o *overlayCatalog) merge(ctx context.Context, userID uuid.UUID, base []domain.Activity, keep func(domain.Activity) bool) ([]domain.Activity, error) {
	o.mu.RLock()
	created := append([]domain.Activity(nil), o.created...)
	o.mu.RUnlock()
	if len(created) == 0 {
		return base, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(base))
	for _, a := range base {
		seen[a.ID] = struct{}{}
	}

	out := base
	var evict []uuid.UUID
	for _, a := range created {
		if a.UserID != userID {
			continue
		}
		if _, ok := seen[a.ID]; ok {
			evict = append(evict, a.ID)
			continue
		}
		if !keep(a) {
			continue
		}
		cur, err := o.base.GetActivity(ctx, userID, a.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// Not readable yet.
			out = append(out, a)
		case err != nil:
			return nil, err
		case !cur.IsActive:
			evict = append(evict, a.ID)
		default:
			out = append(out, *cur)
		}
	}

	o.evict(evict)
	return out, nil
}

func (o *overlayCatalog) evict(ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	kept := o.created[:0]
	for _, a := range o.created {
		if !slices.Contains(ids, a.ID) {
			kept = append(kept, a)
		}
	}
	o.created = kept
}

// size reports how many created activities are still layered.
func (o *overlayCatalog) size() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.created)
}
