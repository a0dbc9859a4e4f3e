package cases

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/caseledger-backend/internal/adapter/memory"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

func newMemoryService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger,
		store.Cases(), store.Items(), store.Tasks(), store.History(), store.Financials(),
		store, Config{},
	)
	return svc, store
}

func TestUpdateCase_ConcurrentWritersOneWins(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t)
	ctx, _ := authCtx(domain.RoleStaff)

	created, err := svc.CreateCase(ctx, CreateCaseInput{
		CaseType: "Liquidation", Jurisdiction: "NSW", OpenedAt: time.Now(),
	})
	require.NoError(t, err)

	const writers = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	start := make(chan struct{})
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			desc := "writer " + string(rune('a'+i))
			_, err := svc.UpdateCase(ctx, UpdateCaseInput{
				CaseID: created.Case.ID, Version: 1, Description: &desc,
			})
			mu.Lock()
			defer mu.Unlock()
			switch domain.CodeOf(err) {
			case "":
				wins++
			case domain.CodeConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, writers-1, conflicts)

	details, err := svc.GetCase(ctx, created.Case.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, details.Case.Version)

	history, err := svc.GetHistory(ctx, created.Case.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "only the winning update is audited")
}

func TestLifecycle_CreateUpdateCloseOnMemoryStore(t *testing.T) {
	t.Parallel()

	svc, store := newMemoryService(t)
	ctx, _ := authCtx(domain.RoleAdmin)

	created, err := svc.CreateCase(ctx, CreateCaseInput{
		CaseType: "Audit", Jurisdiction: "VIC", OpenedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.CloseCase(ctx, CloseCaseInput{CaseID: created.Case.ID, Version: 1})
	var blocked *domain.ClosureBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Len(t, blocked.PendingMandatory, 2)

	for _, it := range created.Items {
		done := it.ComplianceItem
		done.Status = domain.ItemStatusDone
		_, err := store.Items().Update(context.Background(), done)
		require.NoError(t, err)
	}

	_, err = svc.SetFinancials(ctx, SetFinancialsInput{CaseID: created.Case.ID, BalanceDue: 500, Currency: "AUD"})
	require.NoError(t, err)
	_, err = svc.CloseCase(ctx, CloseCaseInput{CaseID: created.Case.ID, Version: 1})
	require.ErrorAs(t, err, &blocked)
	assert.Empty(t, blocked.PendingMandatory)
	assert.Equal(t, int64(500), blocked.BalanceDue)

	_, err = svc.SetFinancials(ctx, SetFinancialsInput{CaseID: created.Case.ID, BalanceDue: 0, Currency: "AUD"})
	require.NoError(t, err)

	closed, err := svc.CloseCase(ctx, CloseCaseInput{CaseID: created.Case.ID, Version: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusClosed, closed.Status)
	assert.Equal(t, 1, closed.Version)

	desc := "late edit"
	_, err = svc.UpdateCase(ctx, UpdateCaseInput{CaseID: created.Case.ID, Version: 1, Description: &desc})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "case is closed", conflict.Reason)
}
