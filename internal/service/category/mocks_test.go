package category

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

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
	callInfo := struct {
		Ctx    context.Context
		Record domain.AuditRecord
	}{Ctx: ctx, Record: record}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
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

	calls struct {
		RunInTx []struct {
			Ctx context.Context
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

var _ categoryRepo = &memRepo{}

// memRepo is an in-memory categoryRepo with the same owner and active
// filtering as the postgres repository. failOn makes the named method fail.
type memRepo struct {
	mu         sync.Mutex
	areas      []domain.Area
	fields     []domain.Field
	activities []domain.Activity

	failOn map[string]error
}

func newMemRepo() *memRepo {
	return &memRepo{failOn: map[string]error{}}
}

func (r *memRepo) fail(method string) error {
	if r.failOn == nil {
		return nil
	}
	return r.failOn[method]
}

func (r *memRepo) seedArea(userID uuid.UUID, name string) domain.Area {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := domain.Area{ID: uuid.New(), UserID: userID, Name: name, Color: domain.DefaultAreaColor, IsActive: true, CreatedAt: time.Now()}
	r.areas = append(r.areas, a)
	return a
}

func (r *memRepo) seedField(area domain.Area, name string) domain.Field {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := domain.Field{ID: uuid.New(), UserID: area.UserID, AreaID: area.ID, Name: name, IsActive: true, CreatedAt: time.Now()}
	r.fields = append(r.fields, f)
	return f
}

func (r *memRepo) seedActivity(field domain.Field, name string) domain.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := domain.Activity{ID: uuid.New(), UserID: field.UserID, FieldID: field.ID, Name: name, IsActive: true, CreatedAt: time.Now()}
	r.activities = append(r.activities, a)
	return a
}

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

// --- areas ---

func (r *memRepo) CreateArea(_ context.Context, area domain.Area) (*domain.Area, error) {
	if err := r.fail("CreateArea"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	area.ID = uuid.New()
	area.IsActive = true
	area.CreatedAt = time.Now()
	r.areas = append(r.areas, area)
	return &area, nil
}

func (r *memRepo) GetArea(_ context.Context, userID, areaID uuid.UUID) (*domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.areas {
		if a.ID == areaID && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, notFound("area", areaID)
}

func (r *memRepo) ListAreas(_ context.Context, userID uuid.UUID) ([]domain.Area, error) {
	if err := r.fail("ListAreas"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Area{}
	for _, a := range r.areas {
		if a.UserID == userID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memRepo) CountAreas(ctx context.Context, userID uuid.UUID) (int, error) {
	areas, err := r.ListAreas(ctx, userID)
	return len(areas), err
}

func (r *memRepo) UpdateArea(_ context.Context, userID, areaID uuid.UUID, params domain.AreaUpdateParams) (*domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.areas {
		if a.ID == areaID && a.UserID == userID && a.IsActive {
			if params.Name != nil {
				r.areas[i].Name = *params.Name
			}
			if params.Color != nil {
				r.areas[i].Color = *params.Color
			}
			out := r.areas[i]
			return &out, nil
		}
	}
	return nil, notFound("area", areaID)
}

func (r *memRepo) ArchiveArea(_ context.Context, userID, areaID uuid.UUID) (domain.ArchiveSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s domain.ArchiveSummary
	for i, a := range r.areas {
		if a.ID == areaID && a.UserID == userID && a.IsActive {
			r.areas[i].IsActive = false
			s.Areas = 1
		}
	}
	if s.Areas == 0 {
		return s, notFound("area", areaID)
	}
	for i, f := range r.fields {
		if f.AreaID == areaID && f.IsActive {
			r.fields[i].IsActive = false
			s.Fields++
			s.Activities += r.archiveActivitiesLocked(f.ID)
		}
	}
	return s, nil
}

// --- fields ---

func (r *memRepo) CreateField(_ context.Context, field domain.Field) (*domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	field.ID = uuid.New()
	field.IsActive = true
	field.CreatedAt = time.Now()
	r.fields = append(r.fields, field)
	return &field, nil
}

func (r *memRepo) GetField(_ context.Context, userID, fieldID uuid.UUID) (*domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.fields {
		if f.ID == fieldID && f.UserID == userID {
			return &f, nil
		}
	}
	return nil, notFound("field", fieldID)
}

func (r *memRepo) ListFields(_ context.Context, userID, areaID uuid.UUID) ([]domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Field{}
	for _, f := range r.fields {
		if f.UserID == userID && f.AreaID == areaID && f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memRepo) ListUserFields(_ context.Context, userID uuid.UUID) ([]domain.Field, error) {
	if err := r.fail("ListUserFields"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Field{}
	for _, f := range r.fields {
		if f.UserID == userID && f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memRepo) CountFields(ctx context.Context, userID, areaID uuid.UUID) (int, error) {
	fields, err := r.ListFields(ctx, userID, areaID)
	return len(fields), err
}

func (r *memRepo) RenameField(_ context.Context, userID, fieldID uuid.UUID, name string) (*domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.fields {
		if f.ID == fieldID && f.UserID == userID && f.IsActive {
			r.fields[i].Name = name
			out := r.fields[i]
			return &out, nil
		}
	}
	return nil, notFound("field", fieldID)
}

func (r *memRepo) ArchiveField(_ context.Context, userID, fieldID uuid.UUID) (domain.ArchiveSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.fields {
		if f.ID == fieldID && f.UserID == userID && f.IsActive {
			r.fields[i].IsActive = false
			return domain.ArchiveSummary{Fields: 1, Activities: r.archiveActivitiesLocked(fieldID)}, nil
		}
	}
	return domain.ArchiveSummary{}, notFound("field", fieldID)
}

// --- activities ---

func (r *memRepo) CreateActivity(_ context.Context, act domain.Activity) (*domain.Activity, error) {
	if err := r.fail("CreateActivity"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	act.ID = uuid.New()
	act.IsActive = true
	act.CreatedAt = time.Now()
	r.activities = append(r.activities, act)
	return &act, nil
}

func (r *memRepo) GetActivity(_ context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.activities {
		if a.ID == activityID && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, notFound("activity", activityID)
}

func (r *memRepo) ListActivities(_ context.Context, userID, fieldID uuid.UUID) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Activity{}
	for _, a := range r.activities {
		if a.UserID == userID && a.FieldID == fieldID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memRepo) ListUserActivities(_ context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Activity{}
	for _, a := range r.activities {
		if a.UserID == userID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memRepo) CountActivities(ctx context.Context, userID, fieldID uuid.UUID) (int, error) {
	acts, err := r.ListActivities(ctx, userID, fieldID)
	return len(acts), err
}

func (r *memRepo) RenameActivity(_ context.Context, userID, activityID uuid.UUID, name string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.activities {
		if a.ID == activityID && a.UserID == userID && a.IsActive {
			r.activities[i].Name = name
			out := r.activities[i]
			return &out, nil
		}
	}
	return nil, notFound("activity", activityID)
}

func (r *memRepo) ArchiveActivity(_ context.Context, userID, activityID uuid.UUID) (domain.ArchiveSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.activities {
		if a.ID == activityID && a.UserID == userID && a.IsActive {
			r.activities[i].IsActive = false
			return domain.ArchiveSummary{Activities: 1}, nil
		}
	}
	return domain.ArchiveSummary{}, notFound("activity", activityID)
}

func (r *memRepo) archiveActivitiesLocked(fieldID uuid.UUID) int {
	n := 0
	for i, a := range r.activities {
		if a.FieldID == fieldID && a.IsActive {
			r.activities[i].IsActive = false
			n++
		}
	}
	return n
}
