package cases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// SetFinancials records the balance due reported by accounting for a case.
// The figure is consulted by the closure gate; it is neither versioned nor audited.
func (s *Service) SetFinancials(ctx context.Context, input SetFinancialsInput) (_ *domain.FinancialSummary, err error) {
	ctx, end := s.startOp(ctx, "set_financials", attribute.String("case.id", input.CaseID.String()))
	defer end(&err)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var saved *domain.FinancialSummary
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, getErr := s.cases.GetByID(txCtx, input.CaseID)
		if getErr != nil {
			return fmt.Errorf("get case: %w", getErr)
		}
		if c.IsClosed() {
			return &domain.ConflictError{CaseID: c.ID, Reason: "case is closed"}
		}

		var upsertErr error
		saved, upsertErr = s.financials.Upsert(txCtx, domain.FinancialSummary{
			CaseID:     c.ID,
			BalanceDue: input.BalanceDue,
			Currency:   strings.ToUpper(strings.TrimSpace(input.Currency)),
			UpdatedAt:  s.clock(),
		})
		if upsertErr != nil {
			return fmt.Errorf("upsert financials: %w", upsertErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "case financials recorded",
		slog.String("user_id", userID.String()),
		slog.String("case_id", input.CaseID.String()),
		slog.Int64("balance_due", saved.BalanceDue),
	)
	return saved, nil
}
