package compliance

import (
	"context"
	"fmt"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

// ListOverdue reports pending items past their due date on open cases,
// earliest due first. It does not require a principal so operators can run
// it from the command line.
func (s *Service) ListOverdue(ctx context.Context, limit int) (_ []domain.OverdueItem, err error) {
	ctx, end := s.startOp(ctx, "list_overdue")
	defer end(&err)

	switch {
	case limit < 0 || limit > MaxOverdueLimit:
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", MaxOverdueLimit))
	case limit == 0:
		limit = DefaultOverdueLimit
	}

	items, err := s.items.ListOverdue(ctx, s.clock(), limit)
	if err != nil {
		return nil, fmt.Errorf("list overdue: %w", err)
	}
	return items, nil
}
