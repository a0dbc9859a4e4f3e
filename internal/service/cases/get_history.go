package cases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// GetHistory returns the field-level history of a case, most recent first.
func (s *Service) GetHistory(ctx context.Context, caseID uuid.UUID) (_ []domain.HistoryRecord, err error) {
	ctx, end := s.startOp(ctx, "get_history", attribute.String("case.id", caseID.String()))
	defer end(&err)

	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	records, err := s.history.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}
