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

// CreateItem adds an item to a case. Status defaults to PENDING.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (_ *domain.ObservedItem, err error) {
	ctx, end := s.startOp(ctx, "create_item", attribute.String("case.id", input.CaseID.String()))
	defer end(&err)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock()
	item := domain.ComplianceItem{
		ID:        uuid.New(),
		CaseID:    input.CaseID,
		Title:     domain.NormalizeLabel(input.Title),
		Mandatory: input.Mandatory,
		Status:    domain.ItemStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.DueAt != nil {
		d := input.DueAt.UTC()
		item.DueAt = &d
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.metrics.IncItemMutation("create")
	s.log.InfoContext(ctx, "compliance item created",
		slog.String("user_id", userID.String()),
		slog.String("case_id", created.CaseID.String()),
		slog.String("item_id", created.ID.String()),
		slog.Bool("mandatory", created.Mandatory),
		slog.String("status", created.Status.String()),
	)

	return &domain.ObservedItem{ComplianceItem: *created, Observed: domain.DeriveStatus(*created, now)}, nil
}
