package dataloader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	dl "github.com/heartmarshall/zeitdreher-backend/internal/transport/dataloader"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

type mockPathRepo struct {
	mu     sync.Mutex
	result []domain.CategoryPath
	err    error
	calls  [][]uuid.UUID
	users  []uuid.UUID
}

func (m *mockPathRepo) ActivityPaths(_ context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.CategoryPath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, ids)
	m.users = append(m.users, userID)
	return m.result, m.err
}

func pathFor(activityID uuid.UUID, name string) domain.CategoryPath {
	return domain.CategoryPath{
		Area:     domain.Area{ID: uuid.New(), Name: "Entwicklung"},
		Field:    domain.Field{ID: uuid.New(), Name: "Backend"},
		Activity: domain.Activity{ID: activityID, Name: name},
	}
}

func TestFromContext_ReturnsLoaders(t *testing.T) {
	loaders := dl.NewLoaders(&dl.Repos{Paths: &mockPathRepo{}})
	ctx := dl.WithLoaders(context.Background(), loaders)

	assert.Equal(t, loaders, dl.FromContext(ctx))
}

func TestFromContext_PanicsWhenMissing(t *testing.T) {
	assert.Panics(t, func() {
		dl.FromContext(context.Background())
	})
}

func TestMiddleware_InjectsLoaders(t *testing.T) {
	mw := dl.Middleware(&dl.Repos{Paths: &mockPathRepo{}})

	var got *dl.Loaders
	handler := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = dl.FromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil))

	require.NotNil(t, got)
	assert.NotNil(t, got.PathByActivityID)
}

func TestPathLoader_BatchesAndMaps(t *testing.T) {
	a1, a2, missing := uuid.New(), uuid.New(), uuid.New()
	userID := uuid.New()
	repo := &mockPathRepo{result: []domain.CategoryPath{pathFor(a1, "Go Services"), pathFor(a2, "Reviews")}}

	loaders := dl.NewLoaders(&dl.Repos{Paths: repo})
	ctx := ctxutil.WithUserID(context.Background(), userID)

	thunks := loaders.PathByActivityID.LoadMany(ctx, []uuid.UUID{a1, a2, missing})
	paths, errs := thunks()
	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, paths, 3)

	assert.Equal(t, "Go Services", paths[0].Activity.Name)
	assert.Equal(t, "Reviews", paths[1].Activity.Name)
	assert.Nil(t, paths[2], "unknown activity should map to nil")

	require.Len(t, repo.calls, 1, "keys should be fetched in one batch")
	assert.ElementsMatch(t, []uuid.UUID{a1, a2, missing}, repo.calls[0])
	assert.Equal(t, userID, repo.users[0])
}

func TestPathLoader_ErrorOnMissingUserID(t *testing.T) {
	loaders := dl.NewLoaders(&dl.Repos{Paths: &mockPathRepo{}})

	_, err := loaders.PathByActivityID.Load(context.Background(), uuid.New())()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPathLoader_PropagatesError(t *testing.T) {
	repo := &mockPathRepo{err: domain.ErrNotFound}
	loaders := dl.NewLoaders(&dl.Repos{Paths: repo})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := loaders.PathByActivityID.Load(ctx, uuid.New())()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
