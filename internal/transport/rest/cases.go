package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/service/cases"
)

type caseService interface {
	CreateCase(ctx context.Context, input cases.CreateCaseInput) (*domain.CaseDetails, error)
	GetCase(ctx context.Context, caseID uuid.UUID) (*domain.CaseDetails, error)
	ListCases(ctx context.Context, input cases.ListCasesInput) (*cases.ListCasesResult, error)
	UpdateCase(ctx context.Context, input cases.UpdateCaseInput) (*domain.Case, error)
	CloseCase(ctx context.Context, input cases.CloseCaseInput) (*domain.Case, error)
	GetHistory(ctx context.Context, caseID uuid.UUID) ([]domain.HistoryRecord, error)
	SetFinancials(ctx context.Context, input cases.SetFinancialsInput) (*domain.FinancialSummary, error)
}

// CaseHandler serves the case lifecycle endpoints.
type CaseHandler struct {
	svc caseService
	log *slog.Logger
}

// NewCaseHandler creates a CaseHandler.
func NewCaseHandler(svc caseService, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{svc: svc, log: logger.With("handler", "cases")}
}

// Register mounts the case endpoints on r.
func (h *CaseHandler) Register(r chi.Router) {
	r.Route("/cases", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Route("/{caseID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Patch("/", h.Update)
			r.Post("/close", h.Close)
			r.Get("/history", h.History)
			r.Put("/financials", h.SetFinancials)
		})
	})
}

type createCaseRequest struct {
	CaseType     string     `json:"case_type"`
	Jurisdiction string     `json:"jurisdiction"`
	Description  *string    `json:"description"`
	OpenedAt     time.Time  `json:"opened_at"`
	TargetClose  *time.Time `json:"target_close"`
}

type updateCaseRequest struct {
	Version      int        `json:"version"`
	CaseType     *string    `json:"case_type"`
	Jurisdiction *string    `json:"jurisdiction"`
	Description  *string    `json:"description"`
	OpenedAt     *time.Time `json:"opened_at"`
	TargetClose  *time.Time `json:"target_close"`
	Status       *string    `json:"status"`
}

type closeCaseRequest struct {
	Version int `json:"version"`
}

type setFinancialsRequest struct {
	BalanceDue int64  `json:"balance_due"`
	Currency   string `json:"currency"`
}

// Create handles POST /api/cases.
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	details, err := h.svc.CreateCase(r.Context(), cases.CreateCaseInput{
		CaseType:     req.CaseType,
		Jurisdiction: req.Jurisdiction,
		Description:  req.Description,
		OpenedAt:     req.OpenedAt,
		TargetClose:  req.TargetClose,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCaseDetailsResponse(details))
}

// List handles GET /api/cases?status=&jurisdiction=&case_type=&limit=&offset=.
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	input := cases.ListCasesInput{
		Jurisdiction: q.Get("jurisdiction"),
		CaseType:     q.Get("case_type"),
		Limit:        limit,
		Offset:       offset,
	}
	if s := q.Get("status"); s != "" {
		status := domain.CaseStatus(s)
		input.Status = &status
	}

	result, err := h.svc.ListCases(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := listCasesResponse{Cases: make([]caseResponse, 0, len(result.Cases)), Total: result.Total}
	for _, c := range result.Cases {
		resp.Cases = append(resp.Cases, toCaseResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/cases/{caseID}.
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	details, err := h.svc.GetCase(r.Context(), caseID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCaseDetailsResponse(details))
}

// Update handles PATCH /api/cases/{caseID}.
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}
	var req updateCaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := cases.UpdateCaseInput{
		CaseID:       caseID,
		Version:      req.Version,
		CaseType:     req.CaseType,
		Jurisdiction: req.Jurisdiction,
		Description:  req.Description,
		OpenedAt:     req.OpenedAt,
		TargetClose:  req.TargetClose,
	}
	if req.Status != nil {
		status := domain.CaseStatus(*req.Status)
		input.Status = &status
	}

	c, err := h.svc.UpdateCase(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCaseResponse(*c))
}

// Close handles POST /api/cases/{caseID}/close.
func (h *CaseHandler) Close(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}
	var req closeCaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.CloseCase(r.Context(), cases.CloseCaseInput{CaseID: caseID, Version: req.Version})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCaseResponse(*c))
}

// History handles GET /api/cases/{caseID}/history.
func (h *CaseHandler) History(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	records, err := h.svc.GetHistory(r.Context(), caseID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toHistoryResponses(records))
}

// SetFinancials handles PUT /api/cases/{caseID}/financials.
func (h *CaseHandler) SetFinancials(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}
	var req setFinancialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fin, err := h.svc.SetFinancials(r.Context(), cases.SetFinancialsInput{
		CaseID:     caseID,
		BalanceDue: req.BalanceDue,
		Currency:   req.Currency,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toFinancialResponse(*fin))
}
