package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Category path by ActivityID (1:1 nullable)
// ---------------------------------------------------------------------------

func newPathBatchFn(repo pathRepo) dataloader.BatchFunc[uuid.UUID, *domain.CategoryPath] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.CategoryPath] {
		userID, ok := ctxutil.UserIDFromCtx(ctx)
		if !ok {
			return errorResults[*domain.CategoryPath](len(keys), domain.ErrUnauthorized)
		}

		paths, err := repo.ActivityPaths(ctx, userID, keys)
		if err != nil {
			return errorResults[*domain.CategoryPath](len(keys), err)
		}

		byActivity := make(map[uuid.UUID]*domain.CategoryPath, len(paths))
		for i := range paths {
			p := paths[i]
			byActivity[p.Activity.ID] = &p
		}

		results := make([]*dataloader.Result[*domain.CategoryPath], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.CategoryPath]{Data: byActivity[key]}
		}
		return results
	}
}

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}
