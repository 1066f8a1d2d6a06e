package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/resolver"
)

type resolverService interface {
	Resolve(ctx context.Context, input resolver.ResolveInput) (*domain.Outcome, error)
	StartSession(ctx context.Context) (*resolver.Session, error)
	Session(ctx context.Context, id uuid.UUID) (*resolver.Session, error)
	EndSession(ctx context.Context, id uuid.UUID) error
}

type draftSaver interface {
	SaveDraft(ctx context.Context, draft domain.EntryDraft) (*domain.TimeEntry, error)
}

// ResolverHandler serves stateless resolution and the session endpoints that
// drive the confirm/create flow.
type ResolverHandler struct {
	svc   resolverService
	saver draftSaver
	log   *slog.Logger
}

// NewResolverHandler creates a ResolverHandler.
func NewResolverHandler(svc resolverService, saver draftSaver, logger *slog.Logger) *ResolverHandler {
	return &ResolverHandler{svc: svc, saver: saver, log: logger.With("handler", "resolver")}
}

// Resolve handles POST /api/resolve.
func (h *ResolverHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out, err := h.svc.Resolve(r.Context(), resolver.ResolveInput{
		Fragment: req.Fragment.toDomain(),
		Current:  req.Current.toDomain(),
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOutcomeResponse(out))
}

// StartSession handles POST /api/sessions.
func (h *ResolverHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.StartSession(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(sess.View()))
}

// GetSession handles GET /api/sessions/{id}.
func (h *ResolverHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess.View()))
}

// EndSession handles DELETE /api/sessions/{id}.
func (h *ResolverHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if err := h.svc.EndSession(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResolveInSession handles POST /api/sessions/{id}/resolve.
func (h *ResolverHandler) ResolveInSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req sessionResolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out, err := sess.Resolve(r.Context(), req.Fragment.toDomain())
	h.writeOutcome(w, r, sess, out, err)
}

// Confirm handles POST /api/sessions/{id}/confirm.
func (h *ResolverHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	out, err := sess.Confirm(r.Context())
	h.writeOutcome(w, r, sess, out, err)
}

// Reject handles POST /api/sessions/{id}/reject.
func (h *ResolverHandler) Reject(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := sess.Reject(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// Cancel handles POST /api/sessions/{id}/cancel.
func (h *ResolverHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := sess.Cancel(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// Create handles POST /api/sessions/{id}/create.
func (h *ResolverHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req sessionCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out, err := sess.Create(r.Context(), resolver.CreateInput{Name: req.Name, FieldID: req.FieldID})
	h.writeOutcome(w, r, sess, out, err)
}

// Save handles POST /api/sessions/{id}/save. The draft is reset once the
// entry is stored, so the session can collect the next one, unless a newer
// fragment already landed in it.
func (h *ResolverHandler) Save(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	draft, ticket := sess.Checkout()
	entry, err := h.saver.SaveDraft(r.Context(), draft)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if !sess.ResetIf(ticket) {
		h.log.DebugContext(r.Context(), "draft changed while saving, kept", slog.String("session_id", sess.ID.String()))
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(*entry, nil))
}

func (h *ResolverHandler) session(w http.ResponseWriter, r *http.Request) (*resolver.Session, bool) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return nil, false
	}
	sess, err := h.svc.Session(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return nil, false
	}
	return sess, true
}

func (h *ResolverHandler) writeOutcome(w http.ResponseWriter, r *http.Request, sess *resolver.Session, out *domain.Outcome, err error) {
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionOutcomeResponse{
		Outcome: toOutcomeResponse(out),
		Session: toSessionResponse(sess.View()),
	})
}
