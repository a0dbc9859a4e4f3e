package domain

import (
	"time"

	"github.com/google/uuid"
)

// InitialVersion is the version assigned to a freshly created case.
const InitialVersion = 1

// Case is a tracked professional matter moving from opening to closure.
type Case struct {
	ID           uuid.UUID
	CaseType     string
	Jurisdiction string
	Description  *string
	OpenedAt     time.Time
	TargetClose  *time.Time
	Status       CaseStatus
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsClosed reports whether the case reached its terminal state.
func (c *Case) IsClosed() bool { return c.Status.IsTerminal() }

// CaseDetails is a case with its owned children, as returned by read paths.
type CaseDetails struct {
	Case      Case
	Items     []ObservedItem
	Tasks     []Task
	Financial *FinancialSummary
}

// CaseChanges carries the fields supplied in an update request.
// A nil pointer means "not supplied". An empty Description clears it.
type CaseChanges struct {
	CaseType     *string
	Jurisdiction *string
	Description  *string
	OpenedAt     *time.Time
	TargetClose  *time.Time
	Status       *CaseStatus
}

// IsEmpty reports whether no field was supplied.
func (ch CaseChanges) IsEmpty() bool {
	return ch.CaseType == nil && ch.Jurisdiction == nil && ch.Description == nil &&
		ch.OpenedAt == nil && ch.TargetClose == nil && ch.Status == nil
}

// Apply returns a copy of c with the supplied fields overwritten.
func (ch CaseChanges) Apply(c Case) Case {
	if ch.CaseType != nil {
		c.CaseType = *ch.CaseType
	}
	if ch.Jurisdiction != nil {
		c.Jurisdiction = *ch.Jurisdiction
	}
	if ch.Description != nil {
		if *ch.Description == "" {
			c.Description = nil
		} else {
			d := *ch.Description
			c.Description = &d
		}
	}
	if ch.OpenedAt != nil {
		c.OpenedAt = *ch.OpenedAt
	}
	if ch.TargetClose != nil {
		tc := *ch.TargetClose
		c.TargetClose = &tc
	}
	if ch.Status != nil {
		c.Status = *ch.Status
	}
	return c
}

// CaseFilter narrows a case listing. Empty fields do not filter.
type CaseFilter struct {
	Status       *CaseStatus
	Jurisdiction string
	CaseType     string
	Limit        int
	Offset       int
}
