package compliance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// ListItems returns the items of a case with their observed status.
func (s *Service) ListItems(ctx context.Context, caseID uuid.UUID) (_ []domain.ObservedItem, err error) {
	ctx, end := s.startOp(ctx, "list_items", attribute.String("case.id", caseID.String()))
	defer end(&err)

	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	items, err := s.items.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return domain.ObserveItems(items, s.now()), nil
}
