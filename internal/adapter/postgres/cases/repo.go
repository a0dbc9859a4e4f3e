// Package cases implements the Case repository using PostgreSQL.
// Writes are guarded by the version column: every conditional UPDATE names
// the version the caller read, and zero affected rows is reported as a conflict.
package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides case persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new case repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const caseColumns = `id, case_type, jurisdiction, description, opened_at, target_close, status, version, created_at, updated_at`

const createSQL = `
INSERT INTO cases (id, case_type, jurisdiction, description, opened_at, target_close, status, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + caseColumns

const getByIDSQL = `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`

const getForUpdateSQL = getByIDSQL + ` FOR UPDATE`

const updateSQL = `
UPDATE cases
SET case_type = $3, jurisdiction = $4, description = $5, opened_at = $6,
    target_close = $7, status = $8, updated_at = $9, version = version + 1
WHERE id = $1 AND version = $2
RETURNING ` + caseColumns

const closeSQL = `
UPDATE cases
SET status = 'CLOSED', updated_at = $3
WHERE id = $1 AND version = $2 AND status <> 'CLOSED'
RETURNING ` + caseColumns

const currentStateSQL = `SELECT version, status FROM cases WHERE id = $1`

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type caseRow struct {
	ID           uuid.UUID  `db:"id"`
	CaseType     string     `db:"case_type"`
	Jurisdiction string     `db:"jurisdiction"`
	Description  *string    `db:"description"`
	OpenedAt     time.Time  `db:"opened_at"`
	TargetClose  *time.Time `db:"target_close"`
	Status       string     `db:"status"`
	Version      int        `db:"version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (r caseRow) toDomain() domain.Case {
	return domain.Case{
		ID:           r.ID,
		CaseType:     r.CaseType,
		Jurisdiction: r.Jurisdiction,
		Description:  r.Description,
		OpenedAt:     r.OpenedAt,
		TargetClose:  r.TargetClose,
		Status:       domain.CaseStatus(r.Status),
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a case by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return r.get(ctx, getByIDSQL, id)
}

// GetForUpdate returns a case and locks its row until the surrounding
// transaction ends. Outside a transaction it behaves like GetByID.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if !postgres.InTx(ctx) {
		return r.GetByID(ctx, id)
	}
	return r.get(ctx, getForUpdateSQL, id)
}

func (r *Repo) get(ctx context.Context, query string, id uuid.UUID) (*domain.Case, error) {
	var row caseRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, id); err != nil {
		return nil, postgres.MapError(err, domain.EntityCase, id)
	}
	c := row.toDomain()
	return &c, nil
}

// List returns one page of cases matching the filter, newest first,
// together with the total number of matches.
func (r *Repo) List(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where := sq.And{}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": string(*f.Status)})
	}
	if f.Jurisdiction != "" {
		where = append(where, sq.Eq{"jurisdiction": f.Jurisdiction})
	}
	if f.CaseType != "" {
		where = append(where, sq.Eq{"case_type": f.CaseType})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("cases").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count cases: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cases: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := max(f.Offset, 0)

	listSQL, listArgs, err := psql.Select(caseColumns).
		From("cases").
		Where(where).
		OrderBy("updated_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list cases: %w", err)
	}

	var rows []caseRow
	if err := pgxscan.Select(ctx, q, &rows, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list cases: %w", err)
	}

	out := make([]domain.Case, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new case.
func (r *Repo) Create(ctx context.Context, c domain.Case) (*domain.Case, error) {
	var row caseRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, createSQL,
		c.ID, c.CaseType, c.Jurisdiction, c.Description, c.OpenedAt, c.TargetClose,
		string(c.Status), c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityCase, c.ID)
	}
	out := row.toDomain()
	return &out, nil
}

// Update stores c if the row still carries expectedVersion and bumps the version.
// c.UpdatedAt is written as given.
func (r *Repo) Update(ctx context.Context, c domain.Case, expectedVersion int) (*domain.Case, error) {
	var row caseRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, updateSQL,
		c.ID, expectedVersion, c.CaseType, c.Jurisdiction, c.Description, c.OpenedAt,
		c.TargetClose, string(c.Status), c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.conflict(ctx, c.ID, expectedVersion)
	}
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityCase, c.ID)
	}
	out := row.toDomain()
	return &out, nil
}

// Close moves the case to CLOSED if it still carries expectedVersion.
// The version is left unchanged.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, expectedVersion int, at time.Time) (*domain.Case, error) {
	var row caseRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, closeSQL, id, expectedVersion, at)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.conflict(ctx, id, expectedVersion)
	}
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityCase, id)
	}
	out := row.toDomain()
	return &out, nil
}

// conflict explains why a conditional write matched no row.
func (r *Repo) conflict(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	var (
		version int
		status  string
	)
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, currentStateSQL, id).Scan(&version, &status)
	if err != nil {
		return postgres.MapError(err, domain.EntityCase, id)
	}
	if domain.CaseStatus(status).IsTerminal() && version == expectedVersion {
		return &domain.ConflictError{CaseID: id, Reason: "case is closed"}
	}
	return &domain.ConflictError{CaseID: id, Expected: expectedVersion, Actual: version}
}
