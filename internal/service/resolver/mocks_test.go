package resolver

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

var _ activityCreator = &activityCreatorMock{}

type activityCreatorMock struct {
	NewActivityFunc func(ctx context.Context, fieldID uuid.UUID, name string) (*domain.Activity, error)

	calls struct {
		NewActivity []struct {
			Ctx     context.Context
			FieldID uuid.UUID
			Name    string
		}
	}
	lockNewActivity sync.RWMutex
}

func (mock *activityCreatorMock) NewActivity(ctx context.Context, fieldID uuid.UUID, name string) (*domain.Activity, error) {
	if mock.NewActivityFunc == nil {
		panic("activityCreatorMock.NewActivityFunc: method is nil but activityCreator.NewActivity was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		FieldID uuid.UUID
		Name    string
	}{Ctx: ctx, FieldID: fieldID, Name: name}
	mock.lockNewActivity.Lock()
	mock.calls.NewActivity = append(mock.calls.NewActivity, callInfo)
	mock.lockNewActivity.Unlock()
	return mock.NewActivityFunc(ctx, fieldID, name)
}

func (mock *activityCreatorMock) NewActivityCalls() []struct {
	Ctx     context.Context
	FieldID uuid.UUID
	Name    string
} {
	mock.lockNewActivity.RLock()
	calls := mock.calls.NewActivity
	mock.lockNewActivity.RUnlock()
	return calls
}

var _ catalog = &fakeCatalog{}

// fakeCatalog is an in-memory category tree shared by several users. It
// applies the same owner and active filtering as the postgres repository.
// Hooks, when set, run before a method and may block or fail it.
type fakeCatalog struct {
	mu         sync.Mutex
	areas      []domain.Area
	fields     []domain.Field
	activities []domain.Activity

	listUserActivitiesHook func(ctx context.Context) error
	getFieldErr            error
}

func (c *fakeCatalog) addArea(userID uuid.UUID, name string) domain.Area {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := domain.Area{ID: uuid.New(), UserID: userID, Name: name, Color: "#3b82f6", IsActive: true}
	c.areas = append(c.areas, a)
	return a
}

func (c *fakeCatalog) addField(area domain.Area, name string) domain.Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := domain.Field{ID: uuid.New(), UserID: area.UserID, AreaID: area.ID, Name: name, IsActive: true}
	c.fields = append(c.fields, f)
	return f
}

func (c *fakeCatalog) addActivity(field domain.Field, name string) domain.Activity {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := domain.Activity{ID: uuid.New(), UserID: field.UserID, FieldID: field.ID, Name: name, IsActive: true}
	c.activities = append(c.activities, a)
	return a
}

func (c *fakeCatalog) archiveArea(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.areas {
		if c.areas[i].ID == id {
			c.areas[i].IsActive = false
		}
	}
}

func (c *fakeCatalog) archiveActivity(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.activities {
		if c.activities[i].ID == id {
			c.activities[i].IsActive = false
		}
	}
}

// insert stores an activity produced outside the fake, such as by an
// activityCreatorMock.
func (c *fakeCatalog) insert(a domain.Activity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activities = append(c.activities, a)
}

func (c *fakeCatalog) ListAreas(_ context.Context, userID uuid.UUID) ([]domain.Area, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Area
	for _, a := range c.areas {
		if a.UserID == userID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *fakeCatalog) ListFields(_ context.Context, userID, areaID uuid.UUID) ([]domain.Field, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Field
	for _, f := range c.fields {
		if f.UserID == userID && f.AreaID == areaID && f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

func (c *fakeCatalog) ListActivities(_ context.Context, userID, fieldID uuid.UUID) ([]domain.Activity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Activity
	for _, a := range c.activities {
		if a.UserID == userID && a.FieldID == fieldID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *fakeCatalog) ListUserActivities(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	if c.listUserActivitiesHook != nil {
		if err := c.listUserActivitiesHook(ctx); err != nil {
			return nil, err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Activity
	for _, a := range c.activities {
		if a.UserID == userID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *fakeCatalog) GetActivity(_ context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.activities {
		if a.ID == activityID && a.UserID == userID {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetField and GetArea return rows regardless of owner and status so the
// resolver's own checks are exercised.
func (c *fakeCatalog) GetField(_ context.Context, _, fieldID uuid.UUID) (*domain.Field, error) {
	if c.getFieldErr != nil {
		return nil, c.getFieldErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.fields {
		if f.ID == fieldID {
			f := f
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c *fakeCatalog) GetArea(_ context.Context, _, areaID uuid.UUID) (*domain.Area, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.areas {
		if a.ID == areaID {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

type recorderStub struct {
	mu       sync.Mutex
	outcomes []*domain.Outcome
}

func (r *recorderStub) RecordResolution(out *domain.Outcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, out)
	r.mu.Unlock()
}

func (r *recorderStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.outcomes)
}
