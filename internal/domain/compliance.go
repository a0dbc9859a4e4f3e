package domain

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceItem is an obligation that must be satisfied on a case.
type ComplianceItem struct {
	ID        uuid.UUID
	CaseID    uuid.UUID
	Title     string
	Mandatory bool
	DueAt     *time.Time
	Status    ItemStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ObservedItem is a compliance item together with its status as seen at read time.
type ObservedItem struct {
	ComplianceItem
	Observed ObservedStatus
}

// DeriveStatus maps a stored item to the status it is reported with at now.
// DONE dominates; a pending item whose due date has passed is OVERDUE.
func DeriveStatus(item ComplianceItem, now time.Time) ObservedStatus {
	if item.Status == ItemStatusDone {
		return ObservedDone
	}
	if item.DueAt != nil && item.DueAt.Before(now) {
		return ObservedOverdue
	}
	return ObservedPending
}

// ObserveItems applies DeriveStatus to every item.
func ObserveItems(items []ComplianceItem, now time.Time) []ObservedItem {
	out := make([]ObservedItem, 0, len(items))
	for _, it := range items {
		out = append(out, ObservedItem{ComplianceItem: it, Observed: DeriveStatus(it, now)})
	}
	return out
}

// ItemChanges carries the fields supplied in an item patch.
type ItemChanges struct {
	Title     *string
	Mandatory *bool
	DueAt     *time.Time
	Status    *ItemStatus
}

// Apply returns a copy of item with the supplied fields overwritten.
func (ch ItemChanges) Apply(item ComplianceItem) ComplianceItem {
	if ch.Title != nil {
		item.Title = *ch.Title
	}
	if ch.Mandatory != nil {
		item.Mandatory = *ch.Mandatory
	}
	if ch.DueAt != nil {
		d := *ch.DueAt
		item.DueAt = &d
	}
	if ch.Status != nil {
		item.Status = *ch.Status
	}
	return item
}

// OverdueItem is an overdue obligation with enough case context for a report.
type OverdueItem struct {
	Item         ComplianceItem
	CaseType     string
	Jurisdiction string
}
