package cases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// GetCase returns a case with its items (observed status), tasks and financial summary.
func (s *Service) GetCase(ctx context.Context, caseID uuid.UUID) (_ *domain.CaseDetails, err error) {
	ctx, end := s.startOp(ctx, "get_case", attribute.String("case.id", caseID.String()))
	defer end(&err)

	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	items, err := s.items.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	tasks, err := s.tasks.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	fin, err := s.financials.GetByCaseID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("get financials: %w", err)
	}

	return &domain.CaseDetails{
		Case:      *c,
		Items:     domain.ObserveItems(items, s.now()),
		Tasks:     tasks,
		Financial: fin,
	}, nil
}
