package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/service/compliance"
)

type complianceService interface {
	ListItems(ctx context.Context, caseID uuid.UUID) ([]domain.ObservedItem, error)
	CreateItem(ctx context.Context, input compliance.CreateItemInput) (*domain.ObservedItem, error)
	PatchItem(ctx context.Context, input compliance.PatchItemInput) (*domain.ObservedItem, error)
	DeleteItem(ctx context.Context, caseID, itemID uuid.UUID) error
	ListOverdue(ctx context.Context, limit int) ([]domain.OverdueItem, error)
}

// ComplianceHandler serves the compliance item endpoints.
type ComplianceHandler struct {
	svc complianceService
	log *slog.Logger
}

// NewComplianceHandler creates a ComplianceHandler.
func NewComplianceHandler(svc complianceService, logger *slog.Logger) *ComplianceHandler {
	return &ComplianceHandler{svc: svc, log: logger.With("handler", "compliance")}
}

// Register mounts the compliance endpoints on r.
func (h *ComplianceHandler) Register(r chi.Router) {
	r.Route("/cases/{caseID}/compliance-items", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{itemID}", h.Patch)
		r.Delete("/{itemID}", h.Delete)
	})
	r.Get("/compliance-items/overdue", h.Overdue)
}

type createItemRequest struct {
	Title     string     `json:"title"`
	Mandatory bool       `json:"mandatory"`
	DueAt     *time.Time `json:"due_at"`
	Status    *string    `json:"status"`
}

type patchItemRequest struct {
	Title     *string    `json:"title"`
	Mandatory *bool      `json:"mandatory"`
	DueAt     *time.Time `json:"due_at"`
	Status    *string    `json:"status"`
}

// List handles GET /api/cases/{caseID}/compliance-items.
func (h *ComplianceHandler) List(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	items, err := h.svc.ListItems(r.Context(), caseID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// Create handles POST /api/cases/{caseID}/compliance-items.
func (h *ComplianceHandler) Create(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}
	var req createItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := compliance.CreateItemInput{
		CaseID:    caseID,
		Title:     req.Title,
		Mandatory: req.Mandatory,
		DueAt:     req.DueAt,
	}
	if req.Status != nil {
		status := domain.ItemStatus(*req.Status)
		input.Status = &status
	}

	item, err := h.svc.CreateItem(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(*item))
}

// Patch handles PATCH /api/cases/{caseID}/compliance-items/{itemID}.
func (h *ComplianceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}
	var req patchItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := compliance.PatchItemInput{
		CaseID:    caseID,
		ItemID:    itemID,
		Title:     req.Title,
		Mandatory: req.Mandatory,
		DueAt:     req.DueAt,
	}
	if req.Status != nil {
		status := domain.ItemStatus(*req.Status)
		input.Status = &status
	}

	item, err := h.svc.PatchItem(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

// Delete handles DELETE /api/cases/{caseID}/compliance-items/{itemID}.
func (h *ComplianceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), caseID, itemID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Overdue handles GET /api/compliance-items/overdue?limit=.
func (h *ComplianceHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	items, err := h.svc.ListOverdue(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOverdueResponses(items))
}
