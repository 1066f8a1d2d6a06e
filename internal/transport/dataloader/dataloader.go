// Package dataloader provides per-request DataLoaders that batch category
// lookups for time entry listings into single SQL calls. Loaders call the
// repository directly; ownership is enforced by the user_id filter in SQL.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// pathRepo resolves activity IDs to their full area/field/activity chain,
// archived nodes included.
type pathRepo interface {
	ActivityPaths(ctx context.Context, userID uuid.UUID, activityIDs []uuid.UUID) ([]domain.CategoryPath, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	Paths pathRepo
}

// Loaders contains the per-request DataLoaders. Created via NewLoaders.
type Loaders struct {
	PathByActivityID *dataloader.Loader[uuid.UUID, *domain.CategoryPath]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per request, loaders cache results for their lifetime.
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		PathByActivityID: newLoader(newPathBatchFn(repos.Paths)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}
