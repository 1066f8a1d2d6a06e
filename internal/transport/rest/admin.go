package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

const adminRole = "admin"

type sessionAdmin interface {
	Len() int
	Sweep() int
}

// AdminHandler serves operator endpoints for the resolver session store.
type AdminHandler struct {
	sessions sessionAdmin
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(sessions sessionAdmin, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		log:      logger.With("handler", "admin"),
	}
}

type sessionStatsResponse struct {
	Sessions int `json:"sessions"`
}

type sweepResponse struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

// SessionStats returns the number of stored resolver sessions.
// GET /api/admin/sessions
func (h *AdminHandler) SessionStats(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, sessionStatsResponse{Sessions: h.sessions.Len()})
}

// Sweep drops expired sessions immediately instead of waiting for the
// background sweeper.
// POST /api/admin/sessions/sweep
func (h *AdminHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	removed := h.sessions.Sweep()
	h.log.InfoContext(r.Context(), "sessions swept", slog.Int("removed", removed))

	writeJSON(w, http.StatusOK, sweepResponse{Removed: removed, Remaining: h.sessions.Len()})
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if ctxutil.UserRoleFromCtx(r.Context()) != adminRole {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}
