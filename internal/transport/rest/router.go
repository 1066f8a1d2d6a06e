package rest

import "net/http"

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Health     *HealthHandler
	Categories *CategoryHandler
	Resolver   *ResolverHandler
	Entries    *EntryHandler
	Admin      *AdminHandler

	// Dataloaders wraps the entry routes with per-request loaders.
	Dataloaders func(http.Handler) http.Handler

	// Metrics is served on MetricsPath when set.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter registers all routes on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		path := h.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, h.Metrics)
	}

	c := h.Categories
	mux.HandleFunc("GET /api/categories", c.Tree)
	mux.HandleFunc("POST /api/areas", c.CreateArea)
	mux.HandleFunc("PATCH /api/areas/{id}", c.UpdateArea)
	mux.HandleFunc("DELETE /api/areas/{id}", c.ArchiveArea)
	mux.HandleFunc("POST /api/fields", c.CreateField)
	mux.HandleFunc("PATCH /api/fields/{id}", c.RenameField)
	mux.HandleFunc("DELETE /api/fields/{id}", c.ArchiveField)
	mux.HandleFunc("POST /api/activities", c.CreateActivity)
	mux.HandleFunc("PATCH /api/activities/{id}", c.RenameActivity)
	mux.HandleFunc("DELETE /api/activities/{id}", c.ArchiveActivity)

	res := h.Resolver
	mux.HandleFunc("POST /api/resolve", res.Resolve)
	mux.HandleFunc("POST /api/sessions", res.StartSession)
	mux.HandleFunc("GET /api/sessions/{id}", res.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", res.EndSession)
	mux.HandleFunc("POST /api/sessions/{id}/resolve", res.ResolveInSession)
	mux.HandleFunc("POST /api/sessions/{id}/confirm", res.Confirm)
	mux.HandleFunc("POST /api/sessions/{id}/reject", res.Reject)
	mux.HandleFunc("POST /api/sessions/{id}/cancel", res.Cancel)
	mux.HandleFunc("POST /api/sessions/{id}/create", res.Create)
	mux.HandleFunc("POST /api/sessions/{id}/save", res.Save)

	loaders := h.Dataloaders
	if loaders == nil {
		loaders = func(next http.Handler) http.Handler { return next }
	}
	e := h.Entries
	mux.Handle("GET /api/entries", loaders(http.HandlerFunc(e.List)))
	mux.Handle("POST /api/entries", loaders(http.HandlerFunc(e.Create)))
	mux.HandleFunc("DELETE /api/entries/{id}", e.Delete)
	mux.HandleFunc("GET /api/summary", e.Summary)

	if h.Admin != nil {
		mux.HandleFunc("GET /api/admin/sessions", h.Admin.SessionStats)
		mux.HandleFunc("POST /api/admin/sessions/sweep", h.Admin.Sweep)
	}

	return mux
}
