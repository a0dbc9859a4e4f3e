// Package compliance implements the ComplianceItem repository using PostgreSQL.
// Items are always addressed through their owning case: an item id that
// belongs to another case is reported as not found.
package compliance

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides compliance item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new compliance item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const itemColumns = `id, case_id, title, mandatory, due_at, status, created_at, updated_at`

var insertColumns = []string{"id", "case_id", "title", "mandatory", "due_at", "status", "created_at", "updated_at"}

const getSQL = `SELECT ` + itemColumns + ` FROM compliance_items WHERE id = $1 AND case_id = $2`

const listByCaseSQL = `
SELECT ` + itemColumns + `
FROM compliance_items
WHERE case_id = $1
ORDER BY due_at NULLS LAST, created_at, id`

const updateSQL = `
UPDATE compliance_items
SET title = $3, mandatory = $4, due_at = $5, status = $6, updated_at = $7
WHERE id = $1 AND case_id = $2
RETURNING ` + itemColumns

const deleteSQL = `DELETE FROM compliance_items WHERE id = $1 AND case_id = $2`

const listOverdueSQL = `
SELECT ci.id, ci.case_id, ci.title, ci.mandatory, ci.due_at, ci.status, ci.created_at, ci.updated_at,
       c.case_type, c.jurisdiction
FROM compliance_items ci
JOIN cases c ON c.id = ci.case_id
WHERE ci.status = 'PENDING'
  AND ci.due_at IS NOT NULL
  AND ci.due_at < $1
  AND c.status <> 'CLOSED'
ORDER BY ci.due_at, ci.id
LIMIT $2`

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type itemRow struct {
	ID        uuid.UUID  `db:"id"`
	CaseID    uuid.UUID  `db:"case_id"`
	Title     string     `db:"title"`
	Mandatory bool       `db:"mandatory"`
	DueAt     *time.Time `db:"due_at"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

func (r itemRow) toDomain() domain.ComplianceItem {
	return domain.ComplianceItem{
		ID:        r.ID,
		CaseID:    r.CaseID,
		Title:     r.Title,
		Mandatory: r.Mandatory,
		DueAt:     r.DueAt,
		Status:    domain.ItemStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type overdueRow struct {
	itemRow
	CaseType     string `db:"case_type"`
	Jurisdiction string `db:"jurisdiction"`
}

func toDomainItems(rows []itemRow) []domain.ComplianceItem {
	out := make([]domain.ComplianceItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an item of the given case.
func (r *Repo) GetByID(ctx context.Context, caseID, itemID uuid.UUID) (*domain.ComplianceItem, error) {
	var row itemRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getSQL, itemID, caseID); err != nil {
		return nil, postgres.MapError(err, domain.EntityComplianceItem, itemID)
	}
	item := row.toDomain()
	return &item, nil
}

// ListByCase returns every item of a case, earliest due first.
func (r *Repo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error) {
	var rows []itemRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listByCaseSQL, caseID); err != nil {
		return nil, fmt.Errorf("list compliance items: %w", err)
	}
	return toDomainItems(rows), nil
}

// ListOverdue returns pending items due before now on cases that are not closed.
func (r *Repo) ListOverdue(ctx context.Context, now time.Time, limit int) ([]domain.OverdueItem, error) {
	var rows []overdueRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listOverdueSQL, now, limit); err != nil {
		return nil, fmt.Errorf("list overdue items: %w", err)
	}

	out := make([]domain.OverdueItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.OverdueItem{
			Item:         row.itemRow.toDomain(),
			CaseType:     row.CaseType,
			Jurisdiction: row.Jurisdiction,
		})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a single item.
func (r *Repo) Create(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error) {
	query, args, err := insertBuilder([]domain.ComplianceItem{item}).
		Suffix("RETURNING " + itemColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert compliance item: %w", err)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, domain.EntityComplianceItem, item.CaseID)
	}
	out := row.toDomain()
	return &out, nil
}

// CreateBatch inserts items in one statement. All items must belong to the same case.
func (r *Repo) CreateBatch(ctx context.Context, items []domain.ComplianceItem) error {
	if len(items) == 0 {
		return nil
	}

	query, args, err := insertBuilder(items).ToSql()
	if err != nil {
		return fmt.Errorf("build insert compliance items: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, domain.EntityComplianceItem, items[0].CaseID)
	}
	return nil
}

func insertBuilder(items []domain.ComplianceItem) sq.InsertBuilder {
	b := psql.Insert("compliance_items").Columns(insertColumns...)
	for _, it := range items {
		b = b.Values(it.ID, it.CaseID, it.Title, it.Mandatory, it.DueAt, string(it.Status), it.CreatedAt, it.UpdatedAt)
	}
	return b
}

// Update overwrites the mutable fields of an item.
func (r *Repo) Update(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error) {
	var row itemRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, updateSQL,
		item.ID, item.CaseID, item.Title, item.Mandatory, item.DueAt, string(item.Status), item.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityComplianceItem, item.ID)
	}
	out := row.toDomain()
	return &out, nil
}

// Delete removes an item of the given case.
func (r *Repo) Delete(ctx context.Context, caseID, itemID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, itemID, caseID)
	if err != nil {
		return fmt.Errorf("delete compliance item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(domain.EntityComplianceItem, itemID)
	}
	return nil
}
