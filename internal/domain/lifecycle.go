package domain

import (
	"time"

	"github.com/google/uuid"
)

// FinancialSummary is the balance figure supplied by the accounting side for a case.
// BalanceDue is expressed in minor currency units.
type FinancialSummary struct {
	CaseID     uuid.UUID
	BalanceDue int64
	Currency   string
	UpdatedAt  time.Time
}

// Principal is the public identity of an acting user.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

// CheckVersion rejects a write whose expected version does not match the stored one.
func CheckVersion(caseID uuid.UUID, expected, actual int) error {
	if expected != actual {
		return &ConflictError{CaseID: caseID, Expected: expected, Actual: actual}
	}
	return nil
}

// EvaluateClosure checks the closure gate for a case.
// Only the stored status of mandatory items matters; observed OVERDUE is irrelevant.
// A nil financial summary counts as no balance due.
func EvaluateClosure(caseID uuid.UUID, items []ComplianceItem, fin *FinancialSummary) error {
	blocked := &ClosureBlockedError{CaseID: caseID}
	for _, it := range items {
		if it.Mandatory && it.Status != ItemStatusDone {
			blocked.PendingMandatory = append(blocked.PendingMandatory, it.ID)
		}
	}
	if fin != nil && fin.BalanceDue > 0 {
		blocked.BalanceDue = fin.BalanceDue
	}

	if len(blocked.PendingMandatory) > 0 || blocked.BalanceDue > 0 {
		return blocked
	}
	return nil
}
