package domain

import (
	"time"

	"github.com/google/uuid"
)

// Case fields tracked by the history trail, in request order.
const (
	FieldCaseType     = "case_type"
	FieldJurisdiction = "jurisdiction"
	FieldDescription  = "description"
	FieldOpenedAt     = "opened_at"
	FieldTargetClose  = "target_close"
	FieldStatus       = "status"
)

// HistoryEntry is one immutable field change on a case.
type HistoryEntry struct {
	ID        uuid.UUID
	CaseID    uuid.UUID
	ChangedBy uuid.UUID
	ChangedAt time.Time
	Field     string
	OldValue  string
	NewValue  string
}

// HistoryRecord is a history entry annotated with the acting principal.
// Actor is nil when the principal is not registered.
type HistoryRecord struct {
	HistoryEntry
	Actor *Principal
}

// DiffCase produces one entry per supplied field, in request order.
// Values are captured as display strings; absent old values become "".
func DiffCase(old Case, ch CaseChanges, actor uuid.UUID, at time.Time) []HistoryEntry {
	var entries []HistoryEntry
	add := func(field, oldValue, newValue string) {
		entries = append(entries, HistoryEntry{
			ID:        uuid.New(),
			CaseID:    old.ID,
			ChangedBy: actor,
			ChangedAt: at,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
		})
	}

	if ch.CaseType != nil {
		add(FieldCaseType, old.CaseType, *ch.CaseType)
	}
	if ch.Jurisdiction != nil {
		add(FieldJurisdiction, old.Jurisdiction, *ch.Jurisdiction)
	}
	if ch.Description != nil {
		add(FieldDescription, derefString(old.Description), *ch.Description)
	}
	if ch.OpenedAt != nil {
		add(FieldOpenedAt, FormatTime(&old.OpenedAt), FormatTime(ch.OpenedAt))
	}
	if ch.TargetClose != nil {
		add(FieldTargetClose, FormatTime(old.TargetClose), FormatTime(ch.TargetClose))
	}
	if ch.Status != nil {
		add(FieldStatus, old.Status.String(), ch.Status.String())
	}

	return entries
}

// FormatTime renders a timestamp the way the history trail stores it.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
