package memory

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ---------------------------------------------------------------------------
// Cases
// ---------------------------------------------------------------------------

// CaseRepo stores cases.
type CaseRepo struct{ s *Store }

func (r *CaseRepo) Create(ctx context.Context, c domain.Case) (*domain.Case, error) {
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.cases[c.ID]; ok {
			return fmt.Errorf("case %s: %w", c.ID, domain.ErrAlreadyExists)
		}
		st.cases[c.ID] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	var out domain.Case
	err := r.s.read(ctx, func(st *state) error {
		c, ok := st.cases[id]
		if !ok {
			return domain.NewNotFoundError(domain.EntityCase, id)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForUpdate is GetByID: transactions already hold the store lock.
func (r *CaseRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return r.GetByID(ctx, id)
}

func (r *CaseRepo) List(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int, error) {
	var matched []domain.Case
	_ = r.s.read(ctx, func(st *state) error {
		for _, c := range st.cases {
			if f.Status != nil && c.Status != *f.Status {
				continue
			}
			if f.Jurisdiction != "" && c.Jurisdiction != f.Jurisdiction {
				continue
			}
			if f.CaseType != "" && c.CaseType != f.CaseType {
				continue
			}
			matched = append(matched, c)
		}
		return nil
	})

	slices.SortFunc(matched, func(a, b domain.Case) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	offset := max(f.Offset, 0)

	total := len(matched)
	if offset >= total {
		return []domain.Case{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (r *CaseRepo) Update(ctx context.Context, c domain.Case, expectedVersion int) (*domain.Case, error) {
	var out domain.Case
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.cases[c.ID]
		if !ok {
			return domain.NewNotFoundError(domain.EntityCase, c.ID)
		}
		if err := domain.CheckVersion(c.ID, expectedVersion, cur.Version); err != nil {
			return err
		}
		c.Version = cur.Version + 1
		c.CreatedAt = cur.CreatedAt
		st.cases[c.ID] = c
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CaseRepo) Close(ctx context.Context, id uuid.UUID, expectedVersion int, at time.Time) (*domain.Case, error) {
	var out domain.Case
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.cases[id]
		if !ok {
			return domain.NewNotFoundError(domain.EntityCase, id)
		}
		if err := domain.CheckVersion(id, expectedVersion, cur.Version); err != nil {
			return err
		}
		if cur.IsClosed() {
			return &domain.ConflictError{CaseID: id, Reason: "case is closed"}
		}
		cur.Status = domain.CaseStatusClosed
		cur.UpdatedAt = at
		st.cases[id] = cur
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Compliance items
// ---------------------------------------------------------------------------

// ItemRepo stores compliance items.
type ItemRepo struct{ s *Store }

func sortItems(items []domain.ComplianceItem) {
	slices.SortFunc(items, func(a, b domain.ComplianceItem) int {
		switch {
		case a.DueAt == nil && b.DueAt != nil:
			return 1
		case a.DueAt != nil && b.DueAt == nil:
			return -1
		case a.DueAt != nil && b.DueAt != nil:
			if c := a.DueAt.Compare(*b.DueAt); c != 0 {
				return c
			}
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
}

func (r *ItemRepo) GetByID(ctx context.Context, caseID, itemID uuid.UUID) (*domain.ComplianceItem, error) {
	var out domain.ComplianceItem
	err := r.s.read(ctx, func(st *state) error {
		it, ok := st.items[itemID]
		if !ok || it.CaseID != caseID {
			return domain.NewNotFoundError(domain.EntityComplianceItem, itemID)
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ItemRepo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error) {
	out := []domain.ComplianceItem{}
	_ = r.s.read(ctx, func(st *state) error {
		for _, it := range st.items {
			if it.CaseID == caseID {
				out = append(out, it)
			}
		}
		return nil
	})
	sortItems(out)
	return out, nil
}

func (r *ItemRepo) ListOverdue(ctx context.Context, now time.Time, limit int) ([]domain.OverdueItem, error) {
	var items []domain.ComplianceItem
	cases := map[uuid.UUID]domain.Case{}
	_ = r.s.read(ctx, func(st *state) error {
		for _, it := range st.items {
			c, ok := st.cases[it.CaseID]
			if !ok || c.IsClosed() || domain.DeriveStatus(it, now) != domain.ObservedOverdue {
				continue
			}
			items = append(items, it)
			cases[c.ID] = c
		}
		return nil
	})
	sortItems(items)

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]domain.OverdueItem, 0, len(items))
	for _, it := range items {
		c := cases[it.CaseID]
		out = append(out, domain.OverdueItem{Item: it, CaseType: c.CaseType, Jurisdiction: c.Jurisdiction})
	}
	return out, nil
}

func (r *ItemRepo) Create(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error) {
	if err := r.CreateBatch(ctx, []domain.ComplianceItem{item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepo) CreateBatch(ctx context.Context, items []domain.ComplianceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.s.write(ctx, func(st *state) error {
		for _, it := range items {
			if _, ok := st.cases[it.CaseID]; !ok {
				return domain.NewNotFoundError(domain.EntityCase, it.CaseID)
			}
			if _, ok := st.items[it.ID]; ok {
				return fmt.Errorf("compliance_item %s: %w", it.ID, domain.ErrAlreadyExists)
			}
			st.items[it.ID] = it
		}
		return nil
	})
}

func (r *ItemRepo) Update(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error) {
	var out domain.ComplianceItem
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok || cur.CaseID != item.CaseID {
			return domain.NewNotFoundError(domain.EntityComplianceItem, item.ID)
		}
		item.CreatedAt = cur.CreatedAt
		st.items[item.ID] = item
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ItemRepo) Delete(ctx context.Context, caseID, itemID uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		it, ok := st.items[itemID]
		if !ok || it.CaseID != caseID {
			return domain.NewNotFoundError(domain.EntityComplianceItem, itemID)
		}
		delete(st.items, itemID)
		return nil
	})
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

// TaskRepo stores tasks.
type TaskRepo struct{ s *Store }

func (r *TaskRepo) CreateBatch(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.s.write(ctx, func(st *state) error {
		for _, t := range tasks {
			if _, ok := st.cases[t.CaseID]; !ok {
				return domain.NewNotFoundError(domain.EntityCase, t.CaseID)
			}
			st.tasks[t.ID] = t
		}
		return nil
	})
}

func (r *TaskRepo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Task, error) {
	out := []domain.Task{}
	_ = r.s.read(ctx, func(st *state) error {
		for _, t := range st.tasks {
			if t.CaseID == caseID {
				out = append(out, t)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Task) int {
		switch {
		case a.DueAt == nil && b.DueAt != nil:
			return 1
		case a.DueAt != nil && b.DueAt == nil:
			return -1
		case a.DueAt != nil && b.DueAt != nil:
			if c := a.DueAt.Compare(*b.DueAt); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Title, b.Title)
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

// HistoryRepo stores the append-only case history.
type HistoryRepo struct{ s *Store }

func (r *HistoryRepo) Append(ctx context.Context, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.s.write(ctx, func(st *state) error {
		for _, e := range entries {
			if _, ok := st.cases[e.CaseID]; !ok {
				return domain.NewNotFoundError(domain.EntityCase, e.CaseID)
			}
		}
		st.history = append(st.history, entries...)
		return nil
	})
}

// ListByCase returns entries most recent first; entries written together keep
// their original order.
func (r *HistoryRepo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.HistoryRecord, error) {
	out := []domain.HistoryRecord{}
	_ = r.s.read(ctx, func(st *state) error {
		for _, e := range st.history {
			if e.CaseID != caseID {
				continue
			}
			rec := domain.HistoryRecord{HistoryEntry: e}
			if p, ok := st.users[e.ChangedBy]; ok {
				rec.Actor = &p
			}
			out = append(out, rec)
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b domain.HistoryRecord) int {
		return b.ChangedAt.Compare(a.ChangedAt)
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// Financials
// ---------------------------------------------------------------------------

// FinancialRepo stores financial summaries.
type FinancialRepo struct{ s *Store }

func (r *FinancialRepo) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.FinancialSummary, error) {
	var out *domain.FinancialSummary
	_ = r.s.read(ctx, func(st *state) error {
		if fs, ok := st.financials[caseID]; ok {
			out = &fs
		}
		return nil
	})
	return out, nil
}

func (r *FinancialRepo) Upsert(ctx context.Context, fs domain.FinancialSummary) (*domain.FinancialSummary, error) {
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.cases[fs.CaseID]; !ok {
			return domain.NewNotFoundError(domain.EntityCase, fs.CaseID)
		}
		st.financials[fs.CaseID] = fs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &fs, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// UserRepo stores principals.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, p domain.Principal) (*domain.Principal, error) {
	err := r.s.write(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.ID == p.ID || strings.EqualFold(u.Email, p.Email) {
				return fmt.Errorf("principal %s: %w", p.ID, domain.ErrAlreadyExists)
			}
		}
		st.users[p.ID] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	var out domain.Principal
	err := r.s.read(ctx, func(st *state) error {
		p, ok := st.users[id]
		if !ok {
			return domain.NewNotFoundError(domain.EntityPrincipal, id)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.Principal, error) {
	var out []domain.Principal
	_ = r.s.read(ctx, func(st *state) error {
		for _, p := range st.users {
			out = append(out, p)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Principal) int {
		return cmp.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	})
	return out, nil
}
