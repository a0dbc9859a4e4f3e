package cases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

// CreateCase opens an ACTIVE case at version 1 together with the compliance
// items and tasks produced by the seeding policy, in one transaction.
func (s *Service) CreateCase(ctx context.Context, input CreateCaseInput) (_ *domain.CaseDetails, err error) {
	ctx, end := s.startOp(ctx, "create_case")
	defer end(&err)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock()
	c := domain.Case{
		ID:           uuid.New(),
		CaseType:     domain.NormalizeLabel(input.CaseType),
		Jurisdiction: domain.NormalizeLabel(input.Jurisdiction),
		OpenedAt:     input.OpenedAt.UTC(),
		Status:       domain.CaseStatusActive,
		Version:      domain.InitialVersion,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			c.Description = &d
		}
	}
	if input.TargetClose != nil {
		tc := input.TargetClose.UTC()
		c.TargetClose = &tc
	}

	plan := s.seed(c.CaseType, c.Jurisdiction, now).Bind(c.ID)

	var created *domain.Case
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.cases.Create(txCtx, c)
		if createErr != nil {
			return fmt.Errorf("create case: %w", createErr)
		}
		if err := s.items.CreateBatch(txCtx, plan.Items); err != nil {
			return fmt.Errorf("seed compliance items: %w", err)
		}
		if err := s.tasks.CreateBatch(txCtx, plan.Tasks); err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncCaseCreated()
	s.log.InfoContext(ctx, "case created",
		slog.String("user_id", userID.String()),
		slog.String("case_id", created.ID.String()),
		slog.Int("items", len(plan.Items)),
		slog.Int("tasks", len(plan.Tasks)),
	)

	return &domain.CaseDetails{
		Case:  *created,
		Items: domain.ObserveItems(plan.Items, now),
		Tasks: plan.Tasks,
	}, nil
}
