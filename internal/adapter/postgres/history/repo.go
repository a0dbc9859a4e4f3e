// Package history implements the append-only case history repository using PostgreSQL.
package history

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

// Repo provides history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Entries of one update share changed_at; seq keeps them in request order.
const listByCaseSQL = `
SELECT h.id, h.case_id, h.changed_by, h.changed_at, h.field, h.old_value, h.new_value,
       u.name AS actor_name, u.email AS actor_email, u.role AS actor_role
FROM case_history h
LEFT JOIN users u ON u.id = h.changed_by
WHERE h.case_id = $1
ORDER BY h.changed_at DESC, h.seq`

type recordRow struct {
	ID         uuid.UUID `db:"id"`
	CaseID     uuid.UUID `db:"case_id"`
	ChangedBy  uuid.UUID `db:"changed_by"`
	ChangedAt  time.Time `db:"changed_at"`
	Field      string    `db:"field"`
	OldValue   string    `db:"old_value"`
	NewValue   string    `db:"new_value"`
	ActorName  *string   `db:"actor_name"`
	ActorEmail *string   `db:"actor_email"`
	ActorRole  *string   `db:"actor_role"`
}

// Append inserts entries in one statement, preserving their order.
func (r *Repo) Append(ctx context.Context, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	b := psql.Insert("case_history").
		Columns("id", "case_id", "changed_by", "changed_at", "field", "old_value", "new_value")
	for _, e := range entries {
		b = b.Values(e.ID, e.CaseID, e.ChangedBy, e.ChangedAt, e.Field, e.OldValue, e.NewValue)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert history: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "case_history", entries[0].CaseID)
	}
	return nil
}

// ListByCase returns the history of a case, most recent first.
func (r *Repo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.HistoryRecord, error) {
	var rows []recordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listByCaseSQL, caseID); err != nil {
		return nil, fmt.Errorf("list case history: %w", err)
	}

	out := make([]domain.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.HistoryRecord{
			HistoryEntry: domain.HistoryEntry{
				ID:        row.ID,
				CaseID:    row.CaseID,
				ChangedBy: row.ChangedBy,
				ChangedAt: row.ChangedAt,
				Field:     row.Field,
				OldValue:  row.OldValue,
				NewValue:  row.NewValue,
			},
		}
		if row.ActorName != nil {
			rec.Actor = &domain.Principal{
				ID:    row.ChangedBy,
				Name:  *row.ActorName,
				Email: deref(row.ActorEmail),
				Role:  domain.Role(deref(row.ActorRole)),
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
