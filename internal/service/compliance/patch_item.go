package compliance

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// PatchItem updates an item of the addressed case in place.
// An item that belongs to another case is reported as not found.
func (s *Service) PatchItem(ctx context.Context, input PatchItemInput) (_ *domain.ObservedItem, err error) {
	ctx, end := s.startOp(ctx, "patch_item",
		attribute.String("case.id", input.CaseID.String()),
		attribute.String("item.id", input.ItemID.String()),
	)
	defer end(&err)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.ComplianceItem
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, getErr := s.items.GetByID(txCtx, input.CaseID, input.ItemID)
		if getErr != nil {
			return fmt.Errorf("get item: %w", getErr)
		}

		next := input.changes().Apply(*current)
		next.UpdatedAt = s.clock()

		var updateErr error
		updated, updateErr = s.items.Update(txCtx, next)
		if updateErr != nil {
			return fmt.Errorf("update item: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncItemMutation("patch")
	s.log.InfoContext(ctx, "compliance item updated",
		slog.String("user_id", userID.String()),
		slog.String("case_id", updated.CaseID.String()),
		slog.String("item_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)

	return &domain.ObservedItem{ComplianceItem: *updated, Observed: domain.DeriveStatus(*updated, s.now())}, nil
}
