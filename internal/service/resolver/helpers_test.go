package resolver

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/config"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

func testConfig() config.ResolverConfig {
	return config.ResolverConfig{
		FuzzyAccept:               0.6,
		AutoResolve:               0.8,
		CaseInsensitiveConfidence: 0.95,
		SubstringConfidence:       0.8,
		Distance:                  "damerau",
		SessionTTL:                time.Minute,
		MaxSessionsPerUser:        5,
	}
}

func newTestService(t *testing.T, cat *fakeCatalog, creator *activityCreatorMock) (*Service, *recorderStub) {
	t.Helper()
	if creator == nil {
		creator = &activityCreatorMock{}
	}
	rec := &recorderStub{}
	return NewService(slog.New(slog.DiscardHandler), cat, creator, testConfig(), rec), rec
}

func userCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func ptr[T any](v T) *T { return &v }
