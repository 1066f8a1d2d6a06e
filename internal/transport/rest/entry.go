package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/timeentry"
	"github.com/heartmarshall/zeitdreher-backend/internal/transport/dataloader"
)

type entryService interface {
	SaveDraft(ctx context.Context, draft domain.EntryDraft) (*domain.TimeEntry, error)
	ListEntries(ctx context.Context, input timeentry.ListInput) (*timeentry.ListResult, error)
	Summary(ctx context.Context, input timeentry.SummaryInput) (*timeentry.Summary, error)
	DeleteEntry(ctx context.Context, entryID uuid.UUID) error
}

// EntryHandler serves time entry endpoints. Category names of listed entries
// are batched through the request's dataloaders.
type EntryHandler struct {
	svc entryService
	log *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(svc entryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{svc: svc, log: logger.With("handler", "entry")}
}

// Create handles POST /api/entries for entries typed in directly.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	entry, err := h.svc.SaveDraft(r.Context(), req.toDraft())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp, err := h.withPaths(r.Context(), []domain.TimeEntry{*entry})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp[0])
}

// List handles GET /api/entries?from&to&areaId&activityId&limit&offset.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	input := timeentry.ListInput{
		From:       q.date("from"),
		To:         q.date("to"),
		AreaID:     q.uuid("areaId"),
		ActivityID: q.uuid("activityId"),
		Limit:      q.int("limit"),
		Offset:     q.int("offset"),
	}
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	res, err := h.svc.ListEntries(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	entries, err := h.withPaths(r.Context(), res.Entries)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listEntriesResponse{Entries: entries, Total: res.Total})
}

// Delete handles DELETE /api/entries/{id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/summary?from&to.
func (h *EntryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	input := timeentry.SummaryInput{From: q.date("from"), To: q.date("to")}
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	sum, err := h.svc.Summary(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := summaryResponse{
		From:         formatDatePtr(sum.From),
		To:           formatDatePtr(sum.To),
		Areas:        make([]areaTotalResponse, 0, len(sum.Areas)),
		Total:        domain.FormatClock(sum.Total),
		TotalSeconds: int64(sum.Total / time.Second),
	}
	for _, a := range sum.Areas {
		resp.Areas = append(resp.Areas, areaTotalResponse{
			AreaID:       a.AreaID,
			Name:         a.AreaName,
			Color:        a.Color,
			Total:        domain.FormatClock(a.Total),
			TotalSeconds: int64(a.Total / time.Second),
			Entries:      a.Entries,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// withPaths resolves the category path of every entry in one batch.
func (h *EntryHandler) withPaths(ctx context.Context, entries []domain.TimeEntry) ([]entryResponse, error) {
	out := make([]entryResponse, 0, len(entries))
	if len(entries) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ActivityID
	}
	paths, errs := dataloader.FromContext(ctx).PathByActivityID.LoadMany(ctx, ids)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for i, e := range entries {
		out = append(out, toEntryResponse(e, paths[i]))
	}
	return out, nil
}
