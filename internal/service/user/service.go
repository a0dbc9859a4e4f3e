// Package user maintains the principal registry. Principals are the actors
// named in case history; the registry holds their public identity fields.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, p domain.Principal) (*domain.Principal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	List(ctx context.Context) ([]domain.Principal, error)
}

// Service implements principal registry operations.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
	}
}
