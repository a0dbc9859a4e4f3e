package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

// errorResponse is the JSON error envelope returned by every endpoint.
type errorResponse struct {
	Code    domain.Code `json:"code"`
	Message string      `json:"message"`
	Details any         `json:"details,omitempty"`
}

type fieldErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type conflictDetail struct {
	CaseID   string `json:"case_id"`
	Expected int    `json:"expected_version,omitempty"`
	Actual   int    `json:"current_version,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type closureBlockedDetail struct {
	CaseID           string   `json:"case_id"`
	Reasons          []string `json:"reasons"`
	PendingMandatory []string `json:"pending_mandatory_items,omitempty"`
	BalanceDue       int64    `json:"balance_due,omitempty"`
}

var statusByCode = map[domain.Code]int{
	domain.CodeValidation:     http.StatusBadRequest,
	domain.CodeCaseNotFound:   http.StatusNotFound,
	domain.CodeItemNotFound:   http.StatusNotFound,
	domain.CodeNotFound:       http.StatusNotFound,
	domain.CodeConflict:       http.StatusConflict,
	domain.CodeClosureBlocked: http.StatusUnprocessableEntity,
	domain.CodeAlreadyExists:  http.StatusConflict,
	domain.CodeUnauthorized:   http.StatusUnauthorized,
	domain.CodeForbidden:      http.StatusForbidden,
}

// handleError translates a service error into the JSON envelope.
// Internal errors are logged and reported without their text.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code := domain.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
		return
	}

	resp := errorResponse{Code: code, Message: err.Error(), Details: errorDetails(err)}
	switch code {
	case domain.CodeUnauthorized:
		resp.Message = "unauthorized"
	case domain.CodeForbidden:
		resp.Message = "forbidden"
	}
	writeJSON(w, status, resp)
}

func errorDetails(err error) any {
	var (
		ve *domain.ValidationError
		ce *domain.ConflictError
		be *domain.ClosureBlockedError
	)
	switch {
	case errors.As(err, &ve):
		out := make([]fieldErrorDetail, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			out = append(out, fieldErrorDetail{Field: fe.Field, Message: fe.Message})
		}
		return out
	case errors.As(err, &ce):
		return conflictDetail{
			CaseID:   ce.CaseID.String(),
			Expected: ce.Expected,
			Actual:   ce.Actual,
			Reason:   ce.Reason,
		}
	case errors.As(err, &be):
		pending := make([]string, 0, len(be.PendingMandatory))
		for _, id := range be.PendingMandatory {
			pending = append(pending, id.String())
		}
		return closureBlockedDetail{
			CaseID:           be.CaseID.String(),
			Reasons:          be.Reasons(),
			PendingMandatory: pending,
			BalanceDue:       be.BalanceDue,
		}
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code domain.Code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// badRequest reports a malformed request as a validation failure on field.
func badRequest(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    domain.CodeValidation,
		Message: message,
		Details: []fieldErrorDetail{{Field: field, Message: message}},
	})
}
