package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrValidation     = errors.New("validation error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrClosureBlocked = errors.New("closure blocked")
)

// Code is the stable, transport-independent identifier of a failure kind.
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeCaseNotFound   Code = "CASE_NOT_FOUND"
	CodeItemNotFound   Code = "ITEM_NOT_FOUND"
	CodeNotFound       Code = "NOT_FOUND"
	CodeConflict       Code = "CONFLICT"
	CodeClosureBlocked Code = "CLOSURE_BLOCKED"
	CodeAlreadyExists  Code = "ALREADY_EXISTS"
	CodeUnauthorized   Code = "UNAUTHORIZED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeInternal       Code = "INTERNAL"
)

func (c Code) String() string { return string(c) }

// Entity names used by NotFoundError.
const (
	EntityCase           = "case"
	EntityComplianceItem = "compliance_item"
	EntityTask           = "task"
	EntityFinancial      = "financial_summary"
	EntityPrincipal      = "principal"
)

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ---------------------------------------------------------------------------
// Not found
// ---------------------------------------------------------------------------

// NotFoundError reports a referential miss for a specific entity.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ---------------------------------------------------------------------------
// Conflict
// ---------------------------------------------------------------------------

// ConflictError is returned when a write is based on stale state.
// Expected and Actual are zero when the conflict is not a version mismatch.
type ConflictError struct {
	CaseID   uuid.UUID
	Expected int
	Actual   int
	Reason   string
}

func (e *ConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("case %s: %s", e.CaseID, e.Reason)
	}
	return fmt.Sprintf("case %s: version mismatch (expected %d, current %d)", e.CaseID, e.Expected, e.Actual)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ---------------------------------------------------------------------------
// Closure blocked
// ---------------------------------------------------------------------------

// ClosureBlockedError lists the obligations that prevent a case from closing.
type ClosureBlockedError struct {
	CaseID           uuid.UUID
	PendingMandatory []uuid.UUID
	BalanceDue       int64
}

func (e *ClosureBlockedError) Error() string {
	return fmt.Sprintf("case %s: %s", e.CaseID, strings.Join(e.Reasons(), "; "))
}

func (e *ClosureBlockedError) Unwrap() error { return ErrClosureBlocked }

// Reasons returns human-readable blocking reasons in a stable order.
func (e *ClosureBlockedError) Reasons() []string {
	var reasons []string
	if len(e.PendingMandatory) > 0 {
		reasons = append(reasons, fmt.Sprintf("mandatory compliance items incomplete (%d)", len(e.PendingMandatory)))
	}
	if e.BalanceDue > 0 {
		reasons = append(reasons, "balance due must be zero")
	}
	return reasons
}

// ---------------------------------------------------------------------------
// Code mapping
// ---------------------------------------------------------------------------

// CodeOf maps an error to its stable code. Unknown errors map to CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	var nf *NotFoundError
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.As(err, &nf):
		switch nf.Entity {
		case EntityCase:
			return CodeCaseNotFound
		case EntityComplianceItem:
			return CodeItemNotFound
		}
		return CodeNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrClosureBlocked):
		return CodeClosureBlocked
	case errors.Is(err, ErrAlreadyExists):
		return CodeAlreadyExists
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	}
	return CodeInternal
}
