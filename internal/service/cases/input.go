package cases

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

const (
	maxLabelLength       = 200
	maxDescriptionLength = 2000
	maxListLimit         = 200
)

// CreateCaseInput holds the parameters for opening a case.
type CreateCaseInput struct {
	CaseType     string
	Jurisdiction string
	Description  *string
	OpenedAt     time.Time
	TargetClose  *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateCaseInput) Validate() error {
	var errs []domain.FieldError

	errs = validateLabel(errs, domain.FieldCaseType, i.CaseType)
	errs = validateLabel(errs, domain.FieldJurisdiction, i.Jurisdiction)
	errs = validateDescription(errs, i.Description)

	if i.OpenedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: domain.FieldOpenedAt, Message: "required"})
	}
	if i.TargetClose != nil && !i.OpenedAt.IsZero() && i.TargetClose.Before(i.OpenedAt) {
		errs = append(errs, domain.FieldError{Field: domain.FieldTargetClose, Message: "must not precede opened_at"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCaseInput holds a partial update. Nil fields are left unchanged;
// a non-nil empty Description clears it.
type UpdateCaseInput struct {
	CaseID       uuid.UUID
	Version      int
	CaseType     *string
	Jurisdiction *string
	Description  *string
	OpenedAt     *time.Time
	TargetClose  *time.Time
	Status       *domain.CaseStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateCaseInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if i.Version < domain.InitialVersion {
		errs = append(errs, domain.FieldError{Field: "version", Message: "required"})
	}
	if i.changes().IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}

	if i.CaseType != nil {
		errs = validateLabel(errs, domain.FieldCaseType, *i.CaseType)
	}
	if i.Jurisdiction != nil {
		errs = validateLabel(errs, domain.FieldJurisdiction, *i.Jurisdiction)
	}
	errs = validateDescription(errs, i.Description)

	if i.OpenedAt != nil && i.OpenedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: domain.FieldOpenedAt, Message: "required"})
	}
	if i.Status != nil {
		switch {
		case !i.Status.IsValid():
			errs = append(errs, domain.FieldError{Field: domain.FieldStatus, Message: "must be ACTIVE or ON_HOLD"})
		case !i.Status.IsUpdatable():
			errs = append(errs, domain.FieldError{Field: domain.FieldStatus, Message: "cases are closed through the close operation"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// changes converts the input to normalized case changes.
func (i UpdateCaseInput) changes() domain.CaseChanges {
	ch := domain.CaseChanges{
		OpenedAt:    i.OpenedAt,
		TargetClose: i.TargetClose,
		Status:      i.Status,
	}
	if i.CaseType != nil {
		v := domain.NormalizeLabel(*i.CaseType)
		ch.CaseType = &v
	}
	if i.Jurisdiction != nil {
		v := domain.NormalizeLabel(*i.Jurisdiction)
		ch.Jurisdiction = &v
	}
	if i.Description != nil {
		v := strings.TrimSpace(*i.Description)
		ch.Description = &v
	}
	return ch
}

// CloseCaseInput identifies the case to close and the version the caller last read.
type CloseCaseInput struct {
	CaseID  uuid.UUID
	Version int
}

// Validate checks all fields and collects all errors.
func (i CloseCaseInput) Validate() error {
	var errs []domain.FieldError
	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if i.Version < domain.InitialVersion {
		errs = append(errs, domain.FieldError{Field: "version", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListCasesInput holds listing filters. Zero values do not filter.
type ListCasesInput struct {
	Status       *domain.CaseStatus
	Jurisdiction string
	CaseType     string
	Limit        int
	Offset       int
}

// Validate checks all fields and collects all errors.
func (i ListCasesInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be ACTIVE, ON_HOLD or CLOSED"})
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetFinancialsInput records the balance due on a case, in minor units.
type SetFinancialsInput struct {
	CaseID     uuid.UUID
	BalanceDue int64
	Currency   string
}

// Validate checks all fields and collects all errors.
func (i SetFinancialsInput) Validate() error {
	var errs []domain.FieldError
	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if i.BalanceDue < 0 {
		errs = append(errs, domain.FieldError{Field: "balance_due", Message: "must be >= 0"})
	}
	if !isCurrencyCode(strings.TrimSpace(i.Currency)) {
		errs = append(errs, domain.FieldError{Field: "currency", Message: "must be a three-letter ISO 4217 code"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateLabel(errs []domain.FieldError, field, value string) []domain.FieldError {
	v := domain.NormalizeLabel(value)
	if v == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if utf8.RuneCountInString(v) > maxLabelLength {
		return append(errs, domain.FieldError{Field: field, Message: "max 200 characters"})
	}
	return errs
}

func validateDescription(errs []domain.FieldError, d *string) []domain.FieldError {
	if d != nil && utf8.RuneCountInString(strings.TrimSpace(*d)) > maxDescriptionLength {
		return append(errs, domain.FieldError{Field: domain.FieldDescription, Message: "max 2000 characters"})
	}
	return errs
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
