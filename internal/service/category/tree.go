package category

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// Tree returns the authenticated user's active category tree. The three
// levels are loaded concurrently.
func (s *Service) Tree(ctx context.Context) (domain.CategoryTree, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.CategoryTree{}, domain.ErrUnauthorized
	}

	var (
		areas      []domain.Area
		fields     []domain.Field
		activities []domain.Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		areas, err = s.repo.ListAreas(gctx, userID)
		if err != nil {
			return fmt.Errorf("list areas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fields, err = s.repo.ListUserFields(gctx, userID)
		if err != nil {
			return fmt.Errorf("list fields: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		activities, err = s.repo.ListUserActivities(gctx, userID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.CategoryTree{}, err
	}

	return domain.BuildCategoryTree(userID, areas, fields, activities), nil
}
