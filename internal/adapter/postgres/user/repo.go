// Package user implements the principal registry using PostgreSQL.
// Principals are looked up to annotate history entries and to issue tokens.
package user

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

// Repo provides principal persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO users (id, name, email, role)
VALUES ($1, $2, $3, $4)
RETURNING id, name, email, role`

const getByIDSQL = `SELECT id, name, email, role FROM users WHERE id = $1`

const listSQL = `SELECT id, name, email, role FROM users ORDER BY lower(email)`

type userRow struct {
	ID    uuid.UUID `db:"id"`
	Name  string    `db:"name"`
	Email string    `db:"email"`
	Role  string    `db:"role"`
}

func (r userRow) toDomain() domain.Principal {
	return domain.Principal{ID: r.ID, Name: r.Name, Email: r.Email, Role: domain.Role(r.Role)}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create registers a principal. A duplicate email maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p domain.Principal) (*domain.Principal, error) {
	var row userRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, createSQL, p.ID, p.Name, p.Email, string(p.Role))
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityPrincipal, p.ID)
	}
	out := row.toDomain()
	return &out, nil
}

// GetByID returns a principal by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, domain.EntityPrincipal, id)
	}
	out := row.toDomain()
	return &out, nil
}

// List returns every registered principal ordered by email.
func (r *Repo) List(ctx context.Context) ([]domain.Principal, error) {
	var rows []userRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listSQL); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.Principal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
