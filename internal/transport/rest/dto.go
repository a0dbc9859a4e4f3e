package rest

import (
	"time"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

type caseResponse struct {
	ID           string     `json:"id"`
	CaseType     string     `json:"case_type"`
	Jurisdiction string     `json:"jurisdiction"`
	Description  *string    `json:"description"`
	OpenedAt     time.Time  `json:"opened_at"`
	TargetClose  *time.Time `json:"target_close"`
	Status       string     `json:"status"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type caseDetailsResponse struct {
	caseResponse
	ComplianceItems []itemResponse     `json:"compliance_items"`
	Tasks           []taskResponse     `json:"tasks"`
	Financial       *financialResponse `json:"financial_summary"`
}

// itemResponse reports the derived status, never the stored one.
type itemResponse struct {
	ID        string     `json:"id"`
	CaseID    string     `json:"case_id"`
	Title     string     `json:"title"`
	Mandatory bool       `json:"mandatory"`
	DueAt     *time.Time `json:"due_at"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type taskResponse struct {
	ID        string     `json:"id"`
	CaseID    string     `json:"case_id"`
	Title     string     `json:"title"`
	DueAt     *time.Time `json:"due_at"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type financialResponse struct {
	CaseID     string    `json:"case_id"`
	BalanceDue int64     `json:"balance_due"`
	Currency   string    `json:"currency"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type historyResponse struct {
	ID        string             `json:"id"`
	CaseID    string             `json:"case_id"`
	Field     string             `json:"field"`
	OldValue  string             `json:"old_value"`
	NewValue  string             `json:"new_value"`
	ChangedAt time.Time          `json:"changed_at"`
	ChangedBy string             `json:"changed_by"`
	Actor     *principalResponse `json:"actor"`
}

type principalResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type overdueItemResponse struct {
	itemResponse
	CaseType     string `json:"case_type"`
	Jurisdiction string `json:"jurisdiction"`
}

type listCasesResponse struct {
	Cases []caseResponse `json:"cases"`
	Total int            `json:"total"`
}

func toCaseResponse(c domain.Case) caseResponse {
	return caseResponse{
		ID:           c.ID.String(),
		CaseType:     c.CaseType,
		Jurisdiction: c.Jurisdiction,
		Description:  c.Description,
		OpenedAt:     c.OpenedAt,
		TargetClose:  c.TargetClose,
		Status:       c.Status.String(),
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCaseDetailsResponse(d *domain.CaseDetails) caseDetailsResponse {
	resp := caseDetailsResponse{
		caseResponse:    toCaseResponse(d.Case),
		ComplianceItems: toItemResponses(d.Items),
		Tasks:           make([]taskResponse, 0, len(d.Tasks)),
	}
	for _, t := range d.Tasks {
		resp.Tasks = append(resp.Tasks, taskResponse{
			ID:        t.ID.String(),
			CaseID:    t.CaseID.String(),
			Title:     t.Title,
			DueAt:     t.DueAt,
			Status:    t.Status.String(),
			CreatedAt: t.CreatedAt,
		})
	}
	if d.Financial != nil {
		fin := toFinancialResponse(*d.Financial)
		resp.Financial = &fin
	}
	return resp
}

func toItemResponse(it domain.ObservedItem) itemResponse {
	return itemResponse{
		ID:        it.ID.String(),
		CaseID:    it.CaseID.String(),
		Title:     it.Title,
		Mandatory: it.Mandatory,
		DueAt:     it.DueAt,
		Status:    it.Observed.String(),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func toItemResponses(items []domain.ObservedItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

func toFinancialResponse(f domain.FinancialSummary) financialResponse {
	return financialResponse{
		CaseID:     f.CaseID.String(),
		BalanceDue: f.BalanceDue,
		Currency:   f.Currency,
		UpdatedAt:  f.UpdatedAt,
	}
}

func toPrincipalResponse(p domain.Principal) principalResponse {
	return principalResponse{
		ID:    p.ID.String(),
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role.String(),
	}
}

func toHistoryResponses(records []domain.HistoryRecord) []historyResponse {
	out := make([]historyResponse, 0, len(records))
	for _, rec := range records {
		h := historyResponse{
			ID:        rec.ID.String(),
			CaseID:    rec.CaseID.String(),
			Field:     rec.Field,
			OldValue:  rec.OldValue,
			NewValue:  rec.NewValue,
			ChangedAt: rec.ChangedAt,
			ChangedBy: rec.ChangedBy.String(),
		}
		if rec.Actor != nil {
			p := toPrincipalResponse(*rec.Actor)
			h.Actor = &p
		}
		out = append(out, h)
	}
	return out
}

// toOverdueResponses marks every row OVERDUE; the report only selects such items.
func toOverdueResponses(items []domain.OverdueItem) []overdueItemResponse {
	out := make([]overdueItemResponse, 0, len(items))
	for _, it := range items {
		observed := domain.ObservedItem{ComplianceItem: it.Item, Observed: domain.ObservedOverdue}
		out = append(out, overdueItemResponse{
			itemResponse: toItemResponse(observed),
			CaseType:     it.CaseType,
			Jurisdiction: it.Jurisdiction,
		})
	}
	return out
}
