package compliance

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

const maxTitleLength = 300

// CreateItemInput holds the parameters for adding an item to a case.
type CreateItemInput struct {
	CaseID    uuid.UUID
	Title     string
	Mandatory bool
	DueAt     *time.Time
	Status    *domain.ItemStatus // nil means PENDING
}

// Validate checks all fields and collects all errors.
func (i CreateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	errs = validateTitle(errs, i.Title)
	if i.DueAt != nil && i.DueAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_at", Message: "invalid timestamp"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be PENDING or DONE"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PatchItemInput updates an item in place. Nil fields are left unchanged.
type PatchItemInput struct {
	CaseID    uuid.UUID
	ItemID    uuid.UUID
	Title     *string
	Mandatory *bool
	DueAt     *time.Time
	Status    *domain.ItemStatus
}

// Validate checks all fields and collects all errors.
func (i PatchItemInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.Title == nil && i.Mandatory == nil && i.DueAt == nil && i.Status == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		errs = validateTitle(errs, *i.Title)
	}
	if i.DueAt != nil && i.DueAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_at", Message: "invalid timestamp"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be PENDING or DONE"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i PatchItemInput) changes() domain.ItemChanges {
	ch := domain.ItemChanges{
		Mandatory: i.Mandatory,
		DueAt:     i.DueAt,
		Status:    i.Status,
	}
	if i.Title != nil {
		t := domain.NormalizeLabel(*i.Title)
		ch.Title = &t
	}
	return ch
}

func validateTitle(errs []domain.FieldError, title string) []domain.FieldError {
	t := domain.NormalizeLabel(title)
	if t == "" {
		return append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(t) > maxTitleLength {
		return append(errs, domain.FieldError{Field: "title", Message: "max 300 characters"})
	}
	return errs
}
