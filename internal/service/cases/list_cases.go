package cases

import (
	"context"
	"fmt"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// ListCasesResult is one page of cases and the total number of matches.
type ListCasesResult struct {
	Cases []domain.Case
	Total int
}

// ListCases returns cases matching the filter, most recently updated first.
func (s *Service) ListCases(ctx context.Context, input ListCasesInput) (_ *ListCasesResult, err error) {
	ctx, end := s.startOp(ctx, "list_cases")
	defer end(&err)

	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	list, total, err := s.cases.List(ctx, domain.CaseFilter{
		Status:       input.Status,
		Jurisdiction: domain.NormalizeLabel(input.Jurisdiction),
		CaseType:     domain.NormalizeLabel(input.CaseType),
		Limit:        input.Limit,
		Offset:       input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	return &ListCasesResult{Cases: list, Total: total}, nil
}
