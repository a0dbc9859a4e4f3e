package cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// UpdateCase applies a partial update guarded by the caller's version.
// The case row, its version bump and one history entry per supplied field
// are written in one transaction or not at all.
func (s *Service) UpdateCase(ctx context.Context, input UpdateCaseInput) (_ *domain.Case, err error) {
	ctx, end := s.startOp(ctx, "update_case",
		attribute.String("case.id", input.CaseID.String()),
		attribute.Int("case.expected_version", input.Version),
	)
	defer end(&err)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	changes := input.changes()

	var (
		updated *domain.Case
		entries []domain.HistoryEntry
	)
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

		next := changes.Apply(*current)
		if next.TargetClose != nil && next.TargetClose.Before(next.OpenedAt) {
			return domain.NewValidationError(domain.FieldTargetClose, "must not precede opened_at")
		}

		now := s.clock()
		next.UpdatedAt = now

		var updateErr error
		updated, updateErr = s.cases.Update(txCtx, next, input.Version)
		if updateErr != nil {
			return fmt.Errorf("update case: %w", updateErr)
		}

		entries = domain.DiffCase(*current, changes, userID, now)
		if err := s.history.Append(txCtx, entries); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.metrics.IncVersionConflict("update")
			s.log.WarnContext(ctx, "case update rejected",
				slog.String("case_id", input.CaseID.String()),
				slog.Int("expected_version", input.Version),
				slog.String("reason", conflict.Error()),
			)
		}
		return nil, err
	}

	s.metrics.AddHistoryEntries(len(entries))
	s.log.InfoContext(ctx, "case updated",
		slog.String("user_id", userID.String()),
		slog.String("case_id", updated.ID.String()),
		slog.Int("version", updated.Version),
		slog.Int("history_entries", len(entries)),
	)

	return updated, nil
}
