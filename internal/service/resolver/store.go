package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// SessionStore keeps resolution sessions in memory. Sessions expire after ttl
// of inactivity; when a user exceeds maxPerUser the least recently used one
// is evicted.
type SessionStore struct {
	ttl        time.Duration
	maxPerUser int
	now        func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*storeEntry
}

type storeEntry struct {
	sess     *Session
	lastUsed time.Time
}

// NewSessionStore creates an empty store. now is injectable for tests.
func NewSessionStore(ttl time.Duration, maxPerUser int, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		ttl:        ttl,
		maxPerUser: maxPerUser,
		now:        now,
		sessions:   make(map[uuid.UUID]*storeEntry),
	}
}

// Put registers a session, evicting the user's least recently used sessions
// beyond the per-user limit.
func (st *SessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.sessions[s.ID] = &storeEntry{sess: s, lastUsed: now}

	if st.maxPerUser <= 0 {
		return
	}
	for {
		var (
			count  int
			oldest *storeEntry
		)
		for _, e := range st.sessions {
			if e.sess.UserID != s.UserID {
				continue
			}
			count++
			if oldest == nil || e.lastUsed.Before(oldest.lastUsed) {
				oldest = e
			}
		}
		if count <= st.maxPerUser || oldest == nil {
			return
		}
		delete(st.sessions, oldest.sess.ID)
	}
}

// Get returns the session if it exists, belongs to userID and has not
// expired. Any other case is reported as domain.ErrNotFound so callers
// cannot probe for other users' sessions.
func (st *SessionStore) Get(userID, id uuid.UUID) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok || e.sess.UserID != userID {
		return nil, domain.ErrNotFound
	}
	now := st.now()
	if st.expired(e, now) {
		delete(st.sessions, id)
		return nil, domain.ErrNotFound
	}
	e.lastUsed = now
	return e.sess, nil
}

// Delete removes a session owned by userID.
func (st *SessionStore) Delete(userID, id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok || e.sess.UserID != userID {
		return domain.ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	n := 0
	for id, e := range st.sessions {
		if st.expired(e, now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *SessionStore) expired(e *storeEntry, now time.Time) bool {
	return st.ttl > 0 && now.Sub(e.lastUsed) > st.ttl
}
