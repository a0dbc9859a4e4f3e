// Package financial implements the case financial summary repository using PostgreSQL.
package financial

import (
	"context"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

// Repo provides financial summary persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new financial summary repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getSQL = `SELECT case_id, balance_due, currency, updated_at FROM case_financials WHERE case_id = $1`

const upsertSQL = `
INSERT INTO case_financials (case_id, balance_due, currency, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (case_id) DO UPDATE
SET balance_due = EXCLUDED.balance_due, currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at
RETURNING case_id, balance_due, currency, updated_at`

type summaryRow struct {
	CaseID     uuid.UUID `db:"case_id"`
	BalanceDue int64     `db:"balance_due"`
	Currency   string    `db:"currency"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r summaryRow) toDomain() *domain.FinancialSummary {
	return &domain.FinancialSummary{CaseID: r.CaseID, BalanceDue: r.BalanceDue, Currency: r.Currency, UpdatedAt: r.UpdatedAt}
}

// GetByCaseID returns the summary of a case, or nil when none was recorded.
func (r *Repo) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.FinancialSummary, error) {
	var row summaryRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getSQL, caseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityFinancial, caseID)
	}
	return row.toDomain(), nil
}

// Upsert stores the summary of a case, replacing any previous one.
func (r *Repo) Upsert(ctx context.Context, fs domain.FinancialSummary) (*domain.FinancialSummary, error) {
	var row summaryRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, upsertSQL, fs.CaseID, fs.BalanceDue, fs.Currency, fs.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityFinancial, fs.CaseID)
	}
	return row.toDomain(), nil
}
