package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/category"
)

type categoryService interface {
	Tree(ctx context.Context) (domain.CategoryTree, error)
	CreateArea(ctx context.Context, input category.CreateAreaInput) (*domain.Area, error)
	CreateField(ctx context.Context, input category.CreateFieldInput) (*domain.Field, error)
	CreateActivity(ctx context.Context, input category.CreateActivityInput) (*domain.Activity, error)
	UpdateArea(ctx context.Context, input category.UpdateAreaInput) (*domain.Area, error)
	RenameField(ctx context.Context, input category.RenameInput) (*domain.Field, error)
	RenameActivity(ctx context.Context, input category.RenameInput) (*domain.Activity, error)
	ArchiveArea(ctx context.Context, areaID uuid.UUID) (domain.ArchiveSummary, error)
	ArchiveField(ctx context.Context, fieldID uuid.UUID) (domain.ArchiveSummary, error)
	ArchiveActivity(ctx context.Context, activityID uuid.UUID) (domain.ArchiveSummary, error)
}

// CategoryHandler serves the category tree endpoints.
type CategoryHandler struct {
	svc categoryService
	log *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(svc categoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: logger.With("handler", "category")}
}

// Tree handles GET /api/categories.
func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.Tree(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTreeResponse(tree))
}

// CreateArea handles POST /api/areas.
func (h *CategoryHandler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var req createAreaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	area, err := h.svc.CreateArea(r.Context(), category.CreateAreaInput{Name: req.Name, Color: req.Color})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAreaResponse(area))
}

// CreateField handles POST /api/fields.
func (h *CategoryHandler) CreateField(w http.ResponseWriter, r *http.Request) {
	var req createFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	field, err := h.svc.CreateField(r.Context(), category.CreateFieldInput{AreaID: req.AreaID, Name: req.Name})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFieldResponse(field))
}

// CreateActivity handles POST /api/activities.
func (h *CategoryHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	act, err := h.svc.CreateActivity(r.Context(), category.CreateActivityInput{FieldID: req.FieldID, Name: req.Name})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityResponse(act))
}

// UpdateArea handles PATCH /api/areas/{id}.
func (h *CategoryHandler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	var req updateAreaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	area, err := h.svc.UpdateArea(r.Context(), category.UpdateAreaInput{AreaID: id, Name: req.Name, Color: req.Color})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaResponse(area))
}

// RenameField handles PATCH /api/fields/{id}.
func (h *CategoryHandler) RenameField(w http.ResponseWriter, r *http.Request) {
	input, ok := h.renameInput(w, r)
	if !ok {
		return
	}
	field, err := h.svc.RenameField(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFieldResponse(field))
}

// RenameActivity handles PATCH /api/activities/{id}.
func (h *CategoryHandler) RenameActivity(w http.ResponseWriter, r *http.Request) {
	input, ok := h.renameInput(w, r)
	if !ok {
		return
	}
	act, err := h.svc.RenameActivity(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(act))
}

// ArchiveArea handles DELETE /api/areas/{id}.
func (h *CategoryHandler) ArchiveArea(w http.ResponseWriter, r *http.Request) {
	h.archive(w, r, h.svc.ArchiveArea)
}

// ArchiveField handles DELETE /api/fields/{id}.
func (h *CategoryHandler) ArchiveField(w http.ResponseWriter, r *http.Request) {
	h.archive(w, r, h.svc.ArchiveField)
}

// ArchiveActivity handles DELETE /api/activities/{id}.
func (h *CategoryHandler) ArchiveActivity(w http.ResponseWriter, r *http.Request) {
	h.archive(w, r, h.svc.ArchiveActivity)
}

func (h *CategoryHandler) archive(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, uuid.UUID) (domain.ArchiveSummary, error),
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	sum, err := fn(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, archiveResponse{Areas: sum.Areas, Fields: sum.Fields, Activities: sum.Activities})
}

func (h *CategoryHandler) renameInput(w http.ResponseWriter, r *http.Request) (category.RenameInput, bool) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return category.RenameInput{}, false
	}
	var req renameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return category.RenameInput{}, false
	}
	return category.RenameInput{ID: id, Name: req.Name}, true
}
