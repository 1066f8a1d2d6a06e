package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/config"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/category"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/resolver"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/timeentry"
	"github.com/heartmarshall/zeitdreher-backend/internal/transport/dataloader"
)

var discardLog = slog.New(slog.DiscardHandler)

// ---------------------------------------------------------------------------
// categoryService
// ---------------------------------------------------------------------------

type categoryServiceMock struct {
	TreeFunc            func(ctx context.Context) (domain.CategoryTree, error)
	CreateAreaFunc      func(ctx context.Context, input category.CreateAreaInput) (*domain.Area, error)
	CreateFieldFunc     func(ctx context.Context, input category.CreateFieldInput) (*domain.Field, error)
	CreateActivityFunc  func(ctx context.Context, input category.CreateActivityInput) (*domain.Activity, error)
	UpdateAreaFunc      func(ctx context.Context, input category.UpdateAreaInput) (*domain.Area, error)
	RenameFieldFunc     func(ctx context.Context, input category.RenameInput) (*domain.Field, error)
	RenameActivityFunc  func(ctx context.Context, input category.RenameInput) (*domain.Activity, error)
	ArchiveAreaFunc     func(ctx context.Context, id uuid.UUID) (domain.ArchiveSummary, error)
	ArchiveFieldFunc    func(ctx context.Context, id uuid.UUID) (domain.ArchiveSummary, error)
	ArchiveActivityFunc func(ctx context.Context, id uuid.UUID) (domain.ArchiveSummary, error)
}

func (m *categoryServiceMock) Tree(ctx context.Context) (domain.CategoryTree, error) {
	return m.TreeFunc(ctx)
}

func (m *categoryServiceMock) CreateArea(ctx context.Context, input category.CreateAreaInput) (*domain.Area, error) {
	return m.CreateAreaFunc(ctx, input)
}

func (m *categoryServiceMock) CreateField(ctx context.Context, input category.CreateFieldInput) (*domain.Field, error) {
	return m.CreateFieldFunc(ctx, input)
}

func (m *categoryServiceMock) CreateActivity(ctx context.Context, input category.CreateActivityInput) (*domain.Activity, error) {
	return m.CreateActivityFunc(ctx, input)
}

func (m *categoryServiceMock) UpdateArea(ctx context.Context, input category.UpdateAreaInput) (*domain.Area, error) {
	return m.UpdateAreaFunc(ctx, input)
}

func (m *categoryServiceMock) RenameField(ctx context.Context, input category.RenameInput) (*domain.Field, error) {
	return m.RenameFieldFunc(ctx, input)
}

func (m *categoryServiceMock) RenameActivity(ctx context.Context, input category.RenameInput) (*domain.Activity, error) {
	return m.RenameActivityFunc(ctx, input)
}

func (m *categoryServiceMock) ArchiveArea(ctx context.Context, id uuid.UUID) (domain.ArchiveSummary, error) {
	return m.ArchiveAreaFunc(ctx, id)
}

func (m *categoryServiceMock) ArchiveField(ctx context.Context, id uuid.UUID) (domain.ArchiveSummary, error) {
	return m.ArchiveFieldFunc(ctx, id)
}

func (m *categoryServiceMock) ArchiveActivity(ctx context.Context, id uuid.UUID) (domain.ArchiveSummary, error) {
	return m.ArchiveActivityFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// entryService
// ---------------------------------------------------------------------------

type entryServiceMock struct {
	SaveDraftFunc   func(ctx context.Context, draft domain.EntryDraft) (*domain.TimeEntry, error)
	ListEntriesFunc func(ctx context.Context, input timeentry.ListInput) (*timeentry.ListResult, error)
	SummaryFunc     func(ctx context.Context, input timeentry.SummaryInput) (*timeentry.Summary, error)
	DeleteEntryFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *entryServiceMock) SaveDraft(ctx context.Context, draft domain.EntryDraft) (*domain.TimeEntry, error) {
	return m.SaveDraftFunc(ctx, draft)
}

func (m *entryServiceMock) ListEntries(ctx context.Context, input timeentry.ListInput) (*timeentry.ListResult, error) {
	return m.ListEntriesFunc(ctx, input)
}

func (m *entryServiceMock) Summary(ctx context.Context, input timeentry.SummaryInput) (*timeentry.Summary, error) {
	return m.SummaryFunc(ctx, input)
}

func (m *entryServiceMock) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return m.DeleteEntryFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Path repository for dataloaders
// ---------------------------------------------------------------------------

type pathRepoStub struct {
	paths map[uuid.UUID]domain.CategoryPath
	calls int
}

func (p *pathRepoStub) ActivityPaths(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]domain.CategoryPath, error) {
	p.calls++
	var out []domain.CategoryPath
	for _, id := range ids {
		if path, ok := p.paths[id]; ok {
			out = append(out, path)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Resolver catalog: one user's small tree kept in memory
// ---------------------------------------------------------------------------

type treeCatalog struct {
	areas      []domain.Area
	fields     []domain.Field
	activities []domain.Activity
}

func newTreeCatalog(userID uuid.UUID) (*treeCatalog, domain.CategoryPath) {
	a := domain.Area{ID: uuid.New(), UserID: userID, Name: "Entwicklung", Color: "#3b82f6", IsActive: true}
	f := domain.Field{ID: uuid.New(), UserID: userID, AreaID: a.ID, Name: "Frontend", IsActive: true}
	x := domain.Activity{ID: uuid.New(), UserID: userID, FieldID: f.ID, Name: "React Development", IsActive: true}
	cat := &treeCatalog{areas: []domain.Area{a}, fields: []domain.Field{f}, activities: []domain.Activity{x}}
	return cat, domain.CategoryPath{Area: a, Field: f, Activity: x}
}

func (c *treeCatalog) ListAreas(_ context.Context, userID uuid.UUID) ([]domain.Area, error) {
	var out []domain.Area
	for _, a := range c.areas {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *treeCatalog) ListFields(_ context.Context, userID, areaID uuid.UUID) ([]domain.Field, error) {
	var out []domain.Field
	for _, f := range c.fields {
		if f.UserID == userID && f.AreaID == areaID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (c *treeCatalog) ListActivities(_ context.Context, userID, fieldID uuid.UUID) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, a := range c.activities {
		if a.UserID == userID && a.FieldID == fieldID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *treeCatalog) ListUserActivities(_ context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, a := range c.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *treeCatalog) GetActivity(_ context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	for _, a := range c.activities {
		if a.ID == activityID && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("activity %s: %w", activityID, domain.ErrNotFound)
}

func (c *treeCatalog) GetField(_ context.Context, userID, fieldID uuid.UUID) (*domain.Field, error) {
	for _, f := range c.fields {
		if f.ID == fieldID && f.UserID == userID {
			return &f, nil
		}
	}
	return nil, fmt.Errorf("field %s: %w", fieldID, domain.ErrNotFound)
}

func (c *treeCatalog) GetArea(_ context.Context, userID, areaID uuid.UUID) (*domain.Area, error) {
	for _, a := range c.areas {
		if a.ID == areaID && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("area %s: %w", areaID, domain.ErrNotFound)
}

type noCreator struct{}

func (noCreator) NewActivity(context.Context, uuid.UUID, string) (*domain.Activity, error) {
	return nil, domain.ErrForbidden
}

func resolverConfig() config.ResolverConfig {
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

// testRouter wires real handlers around the given services.
func testRouter(cats categoryService, res resolverService, entries *entryServiceMock, paths *pathRepoStub) http.Handler {
	if paths == nil {
		paths = &pathRepoStub{}
	}
	return NewRouter(Handlers{
		Health:      NewHealthHandler(pingOK{}, nil, "test"),
		Categories:  NewCategoryHandler(cats, discardLog),
		Resolver:    NewResolverHandler(res, entries, discardLog),
		Entries:     NewEntryHandler(entries, discardLog),
		Dataloaders: dataloader.Middleware(&dataloader.Repos{Paths: paths}),
	})
}

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

func newResolver(cat *treeCatalog) *resolver.Service {
	return resolver.NewService(discardLog, cat, noCreator{}, resolverConfig(), nil)
}
