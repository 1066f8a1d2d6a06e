package timeentry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	CreateFunc        func(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)
	GetByIDFunc       func(ctx context.Context, userID, entryID uuid.UUID) (*domain.TimeEntry, error)
	ListFunc          func(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.TimeEntry, int, error)
	DeleteFunc        func(ctx context.Context, userID, entryID uuid.UUID) error
	SummaryByAreaFunc func(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]domain.AreaTotal, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Entry domain.TimeEntry
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.EntryFilter
		}
		Delete []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			EntryID uuid.UUID
		}
	}
	lockCreate sync.RWMutex
	lockList   sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *entryRepoMock) Create(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	if mock.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but entryRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Ctx   context.Context
		Entry domain.TimeEntry
	}{Ctx: ctx, Entry: e})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *entryRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Entry domain.TimeEntry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *entryRepoMock) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.TimeEntry, error) {
	if mock.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, userID, entryID)
}

func (mock *entryRepoMock) List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.TimeEntry, int, error) {
	if mock.ListFunc == nil {
		panic("entryRepoMock.ListFunc: method is nil but entryRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.EntryFilter
	}{Ctx: ctx, UserID: userID, Filter: filter})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, filter)
}

func (mock *entryRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.EntryFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *entryRepoMock) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("entryRepoMock.DeleteFunc: method is nil but entryRepo.Delete was just called")
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct {
		Ctx     context.Context
		UserID  uuid.UUID
		EntryID uuid.UUID
	}{Ctx: ctx, UserID: userID, EntryID: entryID})
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, entryID)
}

func (mock *entryRepoMock) DeleteCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	EntryID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *entryRepoMock) SummaryByArea(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]domain.AreaTotal, error) {
	if mock.SummaryByAreaFunc == nil {
		panic("entryRepoMock.SummaryByAreaFunc: method is nil but entryRepo.SummaryByArea was just called")
	}
	return mock.SummaryByAreaFunc(ctx, userID, from, to)
}

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	calls struct {
		Log []struct {
			Ctx    context.Context
			Record domain.AuditRecord
		}
	}
	lockLog sync.RWMutex
}

func (mock *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, struct {
		Ctx    context.Context
		Record domain.AuditRecord
	}{Ctx: ctx, Record: record})
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, record)
}

func (mock *auditLoggerMock) LogCalls() []struct {
	Ctx    context.Context
	Record domain.AuditRecord
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}

var _ categoryReader = &fakeCategories{}

// fakeCategories holds category nodes of several users and filters by owner
// like the postgres repository.
type fakeCategories struct {
	areas      map[uuid.UUID]domain.Area
	fields     map[uuid.UUID]domain.Field
	activities map[uuid.UUID]domain.Activity
	err        error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{
		areas:      map[uuid.UUID]domain.Area{},
		fields:     map[uuid.UUID]domain.Field{},
		activities: map[uuid.UUID]domain.Activity{},
	}
}

func (c *fakeCategories) addPath(userID uuid.UUID) domain.CategoryPath {
	a := domain.Area{ID: uuid.New(), UserID: userID, Name: "Entwicklung", IsActive: true}
	f := domain.Field{ID: uuid.New(), UserID: userID, AreaID: a.ID, Name: "Backend", IsActive: true}
	x := domain.Activity{ID: uuid.New(), UserID: userID, FieldID: f.ID, Name: "Go Services", IsActive: true}
	c.areas[a.ID] = a
	c.fields[f.ID] = f
	c.activities[x.ID] = x
	return domain.CategoryPath{Area: a, Field: f, Activity: x}
}

func (c *fakeCategories) GetArea(_ context.Context, userID, id uuid.UUID) (*domain.Area, error) {
	if c.err != nil {
		return nil, c.err
	}
	if a, ok := c.areas[id]; ok && a.UserID == userID {
		return &a, nil
	}
	return nil, fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
}

func (c *fakeCategories) GetField(_ context.Context, userID, id uuid.UUID) (*domain.Field, error) {
	if c.err != nil {
		return nil, c.err
	}
	if f, ok := c.fields[id]; ok && f.UserID == userID {
		return &f, nil
	}
	return nil, fmt.Errorf("field %s: %w", id, domain.ErrNotFound)
}

func (c *fakeCategories) GetActivity(_ context.Context, userID, id uuid.UUID) (*domain.Activity, error) {
	if c.err != nil {
		return nil, c.err
	}
	if a, ok := c.activities[id]; ok && a.UserID == userID {
		return &a, nil
	}
	return nil, fmt.Errorf("activity %s: %w", id, domain.ErrNotFound)
}
