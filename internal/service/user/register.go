package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

// Register adds a principal to the registry. Authorization is the caller's
// concern: the REST layer requires an admin, casectl runs as the operator.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Principal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.users.Create(ctx, domain.Principal{
		ID:    uuid.New(),
		Name:  domain.NormalizeLabel(input.Name),
		Email: domain.NormalizeKey(input.Email),
		Role:  input.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	s.log.InfoContext(ctx, "principal registered",
		slog.String("user_id", p.ID.String()),
		slog.String("role", p.Role.String()),
	)
	return p, nil
}

// Get returns one principal.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	p, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Get: %w", err)
	}
	return p, nil
}

// List returns all principals ordered by email.
func (s *Service) List(ctx context.Context) ([]domain.Principal, error) {
	list, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return list, nil
}
