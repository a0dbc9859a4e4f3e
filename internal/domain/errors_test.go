package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("case_type", "required")

	if got := err.Error(); got != "validation: case_type: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "case_type", Message: "required"},
		{Field: "opened_at", Message: "required"},
	})

	if got := err.Error(); !strings.HasPrefix(got, "validation: 2 errors") {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrClosureBlocked,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestNotFoundError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	err := fmt.Errorf("load: %w", NewNotFoundError(EntityCase, id))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("errors.Is(err, ErrNotFound) = false")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("errors.As(*NotFoundError) = false")
	}
	if nf.ID != id || nf.Entity != EntityCase {
		t.Errorf("unexpected fields: %+v", nf)
	}
}

func TestConflictError_Message(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	mismatch := &ConflictError{CaseID: id, Expected: 1, Actual: 2}
	if !strings.Contains(mismatch.Error(), "expected 1, current 2") {
		t.Errorf("unexpected message: %q", mismatch.Error())
	}

	closed := &ConflictError{CaseID: id, Reason: "case is closed"}
	if !strings.HasSuffix(closed.Error(), "case is closed") {
		t.Errorf("unexpected message: %q", closed.Error())
	}
}

func TestClosureBlockedError_Reasons(t *testing.T) {
	t.Parallel()

	err := &ClosureBlockedError{
		CaseID:           uuid.New(),
		PendingMandatory: []uuid.UUID{uuid.New()},
		BalanceDue:       100,
	}

	reasons := err.Reasons()
	if len(reasons) != 2 {
		t.Fatalf("reasons: got %d, want 2", len(reasons))
	}
	if !errors.Is(err, ErrClosureBlocked) {
		t.Fatal("errors.Is(err, ErrClosureBlocked) = false")
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"validation", NewValidationError("title", "required"), CodeValidation},
		{"case not found", NewNotFoundError(EntityCase, id), CodeCaseNotFound},
		{"item not found", fmt.Errorf("wrap: %w", NewNotFoundError(EntityComplianceItem, id)), CodeItemNotFound},
		{"other not found", NewNotFoundError(EntityTask, id), CodeNotFound},
		{"bare not found", ErrNotFound, CodeNotFound},
		{"conflict", &ConflictError{CaseID: id, Expected: 1, Actual: 2}, CodeConflict},
		{"closure blocked", &ClosureBlockedError{CaseID: id, BalanceDue: 1}, CodeClosureBlocked},
		{"already exists", ErrAlreadyExists, CodeAlreadyExists},
		{"unauthorized", ErrUnauthorized, CodeUnauthorized},
		{"forbidden", ErrForbidden, CodeForbidden},
		{"unknown", errors.New("boom"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
