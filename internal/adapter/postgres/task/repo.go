// Package task implements the Task repository using PostgreSQL.
package task

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

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new task repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const listByCaseSQL = `
SELECT id, case_id, title, due_at, status, created_at
FROM tasks
WHERE case_id = $1
ORDER BY due_at NULLS LAST, created_at, id`

type taskRow struct {
	ID        uuid.UUID  `db:"id"`
	CaseID    uuid.UUID  `db:"case_id"`
	Title     string     `db:"title"`
	DueAt     *time.Time `db:"due_at"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
}

// CreateBatch inserts tasks in one statement.
func (r *Repo) CreateBatch(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	b := psql.Insert("tasks").Columns("id", "case_id", "title", "due_at", "status", "created_at")
	for _, t := range tasks {
		b = b.Values(t.ID, t.CaseID, t.Title, t.DueAt, string(t.Status), t.CreatedAt)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert tasks: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, domain.EntityTask, tasks[0].CaseID)
	}
	return nil
}

// ListByCase returns the tasks of a case, earliest due first.
func (r *Repo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Task, error) {
	var rows []taskRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listByCaseSQL, caseID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Task{
			ID:        row.ID,
			CaseID:    row.CaseID,
			Title:     row.Title,
			DueAt:     row.DueAt,
			Status:    domain.TaskStatus(row.Status),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
