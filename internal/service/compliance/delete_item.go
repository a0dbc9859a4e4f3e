package compliance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// DeleteItem removes an item from the addressed case.
func (s *Service) DeleteItem(ctx context.Context, caseID, itemID uuid.UUID) (err error) {
	ctx, end := s.startOp(ctx, "delete_item",
		attribute.String("case.id", caseID.String()),
		attribute.String("item.id", itemID.String()),
	)
	defer end(&err)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.items.Delete(ctx, caseID, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.metrics.IncItemMutation("delete")
	s.log.InfoContext(ctx, "compliance item deleted",
		slog.String("user_id", userID.String()),
		slog.String("case_id", caseID.String()),
		slog.String("item_id", itemID.String()),
	)
	return nil
}
