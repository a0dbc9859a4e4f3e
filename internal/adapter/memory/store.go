// Package memory provides an in-process transactional store implementing the
// same repository contracts as the PostgreSQL adapter.
//
// A transaction works on a private clone of the state and swaps it in on
// success, so a failed unit of work leaves nothing behind. Transactions are
// serialized by a single mutex.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

type state struct {
	cases      map[uuid.UUID]domain.Case
	items      map[uuid.UUID]domain.ComplianceItem
	tasks      map[uuid.UUID]domain.Task
	history    []domain.HistoryEntry
	financials map[uuid.UUID]domain.FinancialSummary
	users      map[uuid.UUID]domain.Principal
}

func newState() state {
	return state{
		cases:      map[uuid.UUID]domain.Case{},
		items:      map[uuid.UUID]domain.ComplianceItem{},
		tasks:      map[uuid.UUID]domain.Task{},
		financials: map[uuid.UUID]domain.FinancialSummary{},
		users:      map[uuid.UUID]domain.Principal{},
	}
}

// clone copies the maps. Stored values hold pointers only to immutable
// timestamps and strings, which are replaced rather than mutated.
func (s state) clone() state {
	return state{
		cases:      maps.Clone(s.cases),
		items:      maps.Clone(s.items),
		tasks:      maps.Clone(s.tasks),
		history:    slices.Clone(s.history),
		financials: maps.Clone(s.financials),
		users:      maps.Clone(s.users),
	}
}

// Snapshot is the serialisable representation of the store.
type Snapshot struct {
	Cases      []domain.Case             `json:"cases"`
	Items      []domain.ComplianceItem   `json:"items"`
	Tasks      []domain.Task             `json:"tasks"`
	History    []domain.HistoryEntry     `json:"history"`
	Financials []domain.FinancialSummary `json:"financials"`
	Users      []domain.Principal        `json:"users"`
}

func (s state) snapshot() Snapshot {
	return Snapshot{
		Cases:      slices.Collect(maps.Values(s.cases)),
		Items:      slices.Collect(maps.Values(s.items)),
		Tasks:      slices.Collect(maps.Values(s.tasks)),
		History:    slices.Clone(s.history),
		Financials: slices.Collect(maps.Values(s.financials)),
		Users:      slices.Collect(maps.Values(s.users)),
	}
}

func stateFromSnapshot(snap Snapshot) state {
	st := newState()
	for _, c := range snap.Cases {
		st.cases[c.ID] = c
	}
	for _, it := range snap.Items {
		st.items[it.ID] = it
	}
	for _, t := range snap.Tasks {
		st.tasks[t.ID] = t
	}
	st.history = slices.Clone(snap.History)
	for _, f := range snap.Financials {
		st.financials[f.CaseID] = f
	}
	for _, u := range snap.Users {
		st.users[u.ID] = u
	}
	return st
}

// CommitHook is called with the post-transaction state before it becomes
// visible. An error aborts the commit.
type CommitHook func(Snapshot) error

// Store is the in-memory persistent store.
type Store struct {
	mu       sync.Mutex
	state    state
	onCommit CommitHook
}

// Option configures a Store.
type Option func(*Store)

// WithCommitHook registers a hook run on every successful transaction.
func WithCommitHook(h CommitHook) Option {
	return func(s *Store) { s.onCommit = h }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{state: newState()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type txKey struct{}

func txFromCtx(ctx context.Context) (*state, bool) {
	st, ok := ctx.Value(txKey{}).(*state)
	return st, ok
}

// RunInTx executes fn against a private copy of the state and publishes it
// when fn succeeds. Nested calls reuse the outer transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, &work)); err != nil {
		return err
	}
	if s.onCommit != nil {
		if err := s.onCommit(work.snapshot()); err != nil {
			return fmt.Errorf("commit hook: %w", err)
		}
	}
	s.state = work
	return nil
}

// read runs fn against the transaction state in ctx, or the committed state.
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if st, ok := txFromCtx(ctx); ok {
		return fn(st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// write runs fn inside the transaction in ctx, or in a transaction of its own.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		st, _ := txFromCtx(ctx)
		return fn(st)
	})
}

// Export returns a snapshot of the committed state.
func (s *Store) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.snapshot()
}

// Import replaces the committed state with snap without running the commit hook.
func (s *Store) Import(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snap)
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Cases returns the case repository view.
func (s *Store) Cases() *CaseRepo { return &CaseRepo{s: s} }

// Items returns the compliance item repository view.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Tasks returns the task repository view.
func (s *Store) Tasks() *TaskRepo { return &TaskRepo{s: s} }

// History returns the case history repository view.
func (s *Store) History() *HistoryRepo { return &HistoryRepo{s: s} }

// Financials returns the financial summary repository view.
func (s *Store) Financials() *FinancialRepo { return &FinancialRepo{s: s} }

// Users returns the principal registry view.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
