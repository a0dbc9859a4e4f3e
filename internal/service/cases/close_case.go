package cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// CloseCase moves a case to CLOSED once every mandatory compliance item is
// DONE and no balance is due. The caller's version must match the stored one;
// closing does not bump it.
func (s *Service) CloseCase(ctx context.Context, input CloseCaseInput) (_ *domain.Case, err error) {
	ctx, end := s.startOp(ctx, "close_case",
		attribute.String("case.id", input.CaseID.String()),
		attribute.Int("case.expected_version", input.Version),
	)
	defer end(&err)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !s.mayClose(domain.Role(ctxutil.UserRoleFromCtx(ctx))) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var closed *domain.Case
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, getErr := s.cases.GetForUpdate(txCtx, input.CaseID)
		if getErr != nil {
			return fmt.Errorf("get case: %w", getErr)
		}
		if current.IsClosed() {
			return &domain.ConflictError{CaseID: current.ID, Reason: "case is closed"}
		}
		if err := domain.CheckVersion(current.ID, input.Version, current.Version); err != nil {
			return err
		}

		items, listErr := s.items.ListByCase(txCtx, current.ID)
		if listErr != nil {
			return fmt.Errorf("list items: %w", listErr)
		}
		fin, finErr := s.financials.GetByCaseID(txCtx, current.ID)
		if finErr != nil {
			return fmt.Errorf("get financials: %w", finErr)
		}
		if err := domain.EvaluateClosure(current.ID, items, fin); err != nil {
			return err
		}

		var closeErr error
		closed, closeErr = s.cases.Close(txCtx, current.ID, input.Version, s.clock())
		if closeErr != nil {
			return fmt.Errorf("close case: %w", closeErr)
		}
		return nil
	})
	if err != nil {
		s.recordCloseFailure(ctx, input, err)
		return nil, err
	}

	s.metrics.IncCaseClosed()
	s.log.InfoContext(ctx, "case closed",
		slog.String("user_id", userID.String()),
		slog.String("case_id", closed.ID.String()),
	)

	return closed, nil
}

func (s *Service) mayClose(role domain.Role) bool {
	if len(s.closeRoles) == 0 {
		return true
	}
	return slices.Contains(s.closeRoles, role)
}

func (s *Service) recordCloseFailure(ctx context.Context, input CloseCaseInput, err error) {
	var (
		blocked  *domain.ClosureBlockedError
		conflict *domain.ConflictError
	)
	switch {
	case errors.As(err, &blocked):
		if len(blocked.PendingMandatory) > 0 {
			s.metrics.IncClosureBlocked("mandatory_items")
		}
		if blocked.BalanceDue > 0 {
			s.metrics.IncClosureBlocked("balance_due")
		}
		s.log.WarnContext(ctx, "case closure blocked",
			slog.String("case_id", input.CaseID.String()),
			slog.Int("pending_mandatory", len(blocked.PendingMandatory)),
			slog.Int64("balance_due", blocked.BalanceDue),
		)
	case errors.As(err, &conflict):
		s.metrics.IncVersionConflict("close")
		s.log.WarnContext(ctx, "case close rejected",
			slog.String("case_id", input.CaseID.String()),
			slog.String("reason", conflict.Error()),
		)
	}
}
