package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// SessionState is the position of a session in the confirm/create flow.
type SessionState string

const (
	StateIdle                 SessionState = "idle"
	StateAwaitingConfirmation SessionState = "awaiting_confirmation"
	StateAwaitingCreation     SessionState = "awaiting_creation"
	StateResolved             SessionState = "resolved"
)

func (s SessionState) String() string { return string(s) }

// Session accumulates fragments into one draft for one user. Resolutions may
// overlap; only the most recently started one is applied and older ones
// report domain.ErrStaleResolution. Any user action (confirm, reject, cancel,
// create, reset) also supersedes in-flight resolutions.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time

	engine  *engine
	overlay *overlayCatalog
	creator activityCreator
	rec     recorder
	log     *slog.Logger

	mu      sync.Mutex
	seq     uint64
	state   SessionState
	draft   domain.EntryDraft
	pending *domain.Outcome
}

// SessionView is a consistent snapshot of a session.
type SessionView struct {
	ID      uuid.UUID
	State   SessionState
	Draft   domain.EntryDraft
	Pending *domain.Outcome
}

// StartSession opens a new session for the caller.
func (s *Service) StartSession(ctx context.Context) (*Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	overlay := newOverlayCatalog(s.catalog)
	sess := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
		engine:    s.engine.withCatalog(overlay),
		overlay:   overlay,
		creator:   s.creator,
		rec:       s.rec,
		state:     StateIdle,
	}
	sess.log = s.log.With("session_id", sess.ID.String())
	s.sessions.Put(sess)

	s.log.InfoContext(ctx, "session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sess.ID.String()),
	)
	return sess, nil
}

// Session returns one of the caller's live sessions.
func (s *Service) Session(ctx context.Context, id uuid.UUID) (*Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.sessions.Get(userID, id)
}

// EndSession discards one of the caller's sessions.
func (s *Service) EndSession(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	return s.sessions.Delete(userID, id)
}

// View returns a snapshot of the session.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// State returns the session's position in the confirm/create flow.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Checkout returns the draft for saving together with a ticket for ResetIf.
// It supersedes resolutions still in flight, so the returned draft is the
// one ResetIf will clear.
func (s *Session) Checkout() (domain.EntryDraft, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.draft, s.seq
}

// ResetIf clears the draft like Reset, unless anything changed the session
// since the Checkout that issued ticket. It reports whether it reset.
func (s *Session) ResetIf(ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != ticket {
		return false
	}
	s.resetLocked()
	return true
}

// Resolve resolves a fragment against the draft's current selection and
// merges the result into the draft. The catalog is queried without holding
// the session lock.
func (s *Session) Resolve(ctx context.Context, frag domain.ParsedFragment) (*domain.Outcome, error) {
	if err := frag.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.seq++
	ticket := s.seq
	current := s.draft.Selection
	s.mu.Unlock()

	out, err := s.engine.resolve(ctx, s.UserID, ResolveInput{Fragment: frag, Current: current})

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.seq {
		s.log.DebugContext(ctx, "discarding superseded resolution", slog.Uint64("ticket", ticket))
		return nil, domain.ErrStaleResolution
	}
	if err != nil {
		return nil, err
	}

	s.draft = ApplyOutcome(s.draft, out, frag)
	switch out.Kind {
	case domain.OutcomeNeedsConfirmation:
		s.state = StateAwaitingConfirmation
		s.pending = out
	case domain.OutcomeNoMatch:
		s.state = StateAwaitingCreation
		s.pending = out
	default:
		s.pending = nil
		s.state = settledState(s.draft.Selection)
	}

	s.rec.RecordResolution(out)
	return out, nil
}

// Confirm accepts the pending proposal and applies it to the draft.
func (s *Session) Confirm(ctx context.Context) (*domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingConfirmation || s.pending == nil {
		return nil, s.transitionError("confirm")
	}
	s.seq++

	p := s.pending
	out := &domain.Outcome{
		Kind:      domain.OutcomeResolved,
		Selection: p.Selection,
	}
	if p.Match != nil {
		out.Matches = []domain.MatchResult{*p.Match}
	}

	s.draft.Selection = p.Selection
	s.pending = nil
	s.state = settledState(s.draft.Selection)

	s.log.InfoContext(ctx, "match confirmed", slog.String("input", p.Input))
	return out, nil
}

// Reject declines the pending proposal. A rejected activity match moves on to
// offering creation of a new activity under the proposed field; anything else
// returns to idle.
func (s *Session) Reject(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingConfirmation || s.pending == nil {
		return SessionView{}, s.transitionError("reject")
	}
	s.seq++

	p := s.pending
	if p.Candidate != nil {
		area, field := p.Candidate.Area, p.Candidate.Field
		s.pending = &domain.Outcome{
			Kind: domain.OutcomeNoMatch,
			Suggestion: &domain.CreationSuggestion{
				ActivityName: p.Input,
				Area:         &area,
				Field:        &field,
			},
			Unmatched: []domain.Level{domain.LevelActivity},
		}
		s.state = StateAwaitingCreation
	} else {
		s.pending = nil
		s.state = StateIdle
	}

	s.log.InfoContext(ctx, "match rejected", slog.String("input", p.Input), slog.String("state", s.state.String()))
	return s.viewLocked(), nil
}

// Cancel abandons a pending confirmation or creation.
func (s *Session) Cancel(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingConfirmation && s.state != StateAwaitingCreation {
		return SessionView{}, s.transitionError("cancel")
	}
	s.seq++
	s.pending = nil
	s.state = StateIdle

	s.log.DebugContext(ctx, "pending action cancelled")
	return s.viewLocked(), nil
}

// CreateInput overrides the suggested activity name or field. Zero values
// fall back to the pending suggestion.
type CreateInput struct {
	Name    string
	FieldID *uuid.UUID
}

// Create persists a new activity and selects it. The activity is spliced into
// the session's catalog so later fragments can match it immediately.
//
// If another action supersedes the creation while the activity is being
// stored, the activity still exists: Create reports it with
// Outcome.Superseded set and leaves the draft and state to the newer action.
func (s *Session) Create(ctx context.Context, input CreateInput) (*domain.Outcome, error) {
	s.mu.Lock()
	if s.state != StateAwaitingCreation || s.pending == nil || s.pending.Suggestion == nil {
		s.mu.Unlock()
		return nil, s.transitionError("create")
	}
	s.seq++
	ticket := s.seq
	sug := *s.pending.Suggestion
	s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = sug.ActivityName
	}
	var fieldID uuid.UUID
	switch {
	case input.FieldID != nil:
		fieldID = *input.FieldID
	case sug.Field != nil:
		fieldID = sug.Field.ID
	default:
		return nil, domain.NewValidationError("field_id", "required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	act, err := s.creator.NewActivity(ctx, fieldID, name)
	if err != nil {
		return nil, err
	}
	s.overlay.add(*act)

	field, err := s.overlay.GetField(ctx, s.UserID, act.FieldID)
	if err != nil {
		return nil, fmt.Errorf("get field: %w", err)
	}
	area, err := s.overlay.GetArea(ctx, s.UserID, field.AreaID)
	if err != nil {
		return nil, fmt.Errorf("get area: %w", err)
	}
	path := domain.CategoryPath{Area: *area, Field: *field, Activity: *act}

	out := &domain.Outcome{
		Kind:      domain.OutcomeResolved,
		Selection: path.Selection(),
		Matches: []domain.MatchResult{
			matchResult(domain.LevelActivity, act.ID, act.Name, 1.0, domain.MatchTypeExact),
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		out.Superseded = true
		s.log.InfoContext(ctx, "activity created after session moved on",
			slog.String("activity_id", act.ID.String()),
			slog.String("name", act.Name),
		)
		return out, nil
	}
	s.draft.Selection = out.Selection
	s.pending = nil
	s.state = StateResolved

	s.log.InfoContext(ctx, "activity created from session",
		slog.String("activity_id", act.ID.String()),
		slog.String("name", act.Name),
	)
	return out, nil
}

// Reset clears the draft and any pending action.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.seq++
	s.draft = domain.EntryDraft{}
	s.pending = nil
	s.state = StateIdle
}

func (s *Session) viewLocked() SessionView {
	return SessionView{ID: s.ID, State: s.state, Draft: s.draft, Pending: s.pending}
}

// transitionError must be called with mu held.
func (s *Session) transitionError(action string) error {
	return fmt.Errorf("%s in state %s: %w", action, s.state, domain.ErrConflict)
}

func settledState(sel domain.Selection) SessionState {
	if sel.Complete() {
		return StateResolved
	}
	return StateIdle
}
