package cases

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

var (
	_ caseRepo      = &caseRepoMock{}
	_ itemRepo      = &itemRepoMock{}
	_ taskRepo      = &taskRepoMock{}
	_ historyRepo   = &historyRepoMock{}
	_ financialRepo = &financialRepoMock{}
	_ txManager     = &txManagerMock{}
)

// ---------------------------------------------------------------------------
// caseRepoMock
// ---------------------------------------------------------------------------

type caseRepoMock struct {
	CreateFunc       func(ctx context.Context, c domain.Case) (*domain.Case, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	ListFunc         func(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int, error)
	UpdateFunc       func(ctx context.Context, c domain.Case, expectedVersion int) (*domain.Case, error)
	CloseFunc        func(ctx context.Context, id uuid.UUID, expectedVersion int, at time.Time) (*domain.Case, error)

	calls struct {
		Create []struct {
			C domain.Case
		}
		GetByID []struct {
			ID uuid.UUID
		}
		GetForUpdate []struct {
			ID uuid.UUID
		}
		List []struct {
			F domain.CaseFilter
		}
		Update []struct {
			C               domain.Case
			ExpectedVersion int
		}
		Close []struct {
			ID              uuid.UUID
			ExpectedVersion int
			At              time.Time
		}
	}
	lockCreate       sync.RWMutex
	lockGetByID      sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockList         sync.RWMutex
	lockUpdate       sync.RWMutex
	lockClose        sync.RWMutex
}

func (mock *caseRepoMock) Create(ctx context.Context, c domain.Case) (*domain.Case, error) {
	if mock.CreateFunc == nil {
		panic("caseRepoMock.CreateFunc: method is nil but caseRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ C domain.Case }{C: c})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *caseRepoMock) CreateCalls() []struct{ C domain.Case } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *caseRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if mock.GetByIDFunc == nil {
		panic("caseRepoMock.GetByIDFunc: method is nil but caseRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{ID: id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *caseRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	defer mock.lockGetByID.RUnlock()
	return mock.calls.GetByID
}

func (mock *caseRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if mock.GetForUpdateFunc == nil {
		panic("caseRepoMock.GetForUpdateFunc: method is nil but caseRepo.GetForUpdate was just called")
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, struct{ ID uuid.UUID }{ID: id})
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *caseRepoMock) GetForUpdateCalls() []struct{ ID uuid.UUID } {
	mock.lockGetForUpdate.RLock()
	defer mock.lockGetForUpdate.RUnlock()
	return mock.calls.GetForUpdate
}

func (mock *caseRepoMock) List(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int, error) {
	if mock.ListFunc == nil {
		panic("caseRepoMock.ListFunc: method is nil but caseRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{ F domain.CaseFilter }{F: f})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *caseRepoMock) ListCalls() []struct{ F domain.CaseFilter } {
	mock.lockList.RLock()
	defer mock.lockList.RUnlock()
	return mock.calls.List
}

func (mock *caseRepoMock) Update(ctx context.Context, c domain.Case, expectedVersion int) (*domain.Case, error) {
	if mock.UpdateFunc == nil {
		panic("caseRepoMock.UpdateFunc: method is nil but caseRepo.Update was just called")
	}
	callInfo := struct {
		C               domain.Case
		ExpectedVersion int
	}{C: c, ExpectedVersion: expectedVersion}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, c, expectedVersion)
}

func (mock *caseRepoMock) UpdateCalls() []struct {
	C               domain.Case
	ExpectedVersion int
} {
	mock.lockUpdate.RLock()
	defer mock.lockUpdate.RUnlock()
	return mock.calls.Update
}

func (mock *caseRepoMock) Close(ctx context.Context, id uuid.UUID, expectedVersion int, at time.Time) (*domain.Case, error) {
	if mock.CloseFunc == nil {
		panic("caseRepoMock.CloseFunc: method is nil but caseRepo.Close was just called")
	}
	callInfo := struct {
		ID              uuid.UUID
		ExpectedVersion int
		At              time.Time
	}{ID: id, ExpectedVersion: expectedVersion, At: at}
	mock.lockClose.Lock()
	mock.calls.Close = append(mock.calls.Close, callInfo)
	mock.lockClose.Unlock()
	return mock.CloseFunc(ctx, id, expectedVersion, at)
}

func (mock *caseRepoMock) CloseCalls() []struct {
	ID              uuid.UUID
	ExpectedVersion int
	At              time.Time
} {
	mock.lockClose.RLock()
	defer mock.lockClose.RUnlock()
	return mock.calls.Close
}

// ---------------------------------------------------------------------------
// itemRepoMock
// ---------------------------------------------------------------------------

type itemRepoMock struct {
	CreateBatchFunc func(ctx context.Context, items []domain.ComplianceItem) error
	ListByCaseFunc  func(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error)

	calls struct {
		CreateBatch []struct {
			Items []domain.ComplianceItem
		}
		ListByCase []struct {
			CaseID uuid.UUID
		}
	}
	lockCreateBatch sync.RWMutex
	lockListByCase  sync.RWMutex
}

func (mock *itemRepoMock) CreateBatch(ctx context.Context, items []domain.ComplianceItem) error {
	if mock.CreateBatchFunc == nil {
		panic("itemRepoMock.CreateBatchFunc: method is nil but itemRepo.CreateBatch was just called")
	}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, struct{ Items []domain.ComplianceItem }{Items: items})
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, items)
}

func (mock *itemRepoMock) CreateBatchCalls() []struct{ Items []domain.ComplianceItem } {
	mock.lockCreateBatch.RLock()
	defer mock.lockCreateBatch.RUnlock()
	return mock.calls.CreateBatch
}

func (mock *itemRepoMock) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error) {
	if mock.ListByCaseFunc == nil {
		panic("itemRepoMock.ListByCaseFunc: method is nil but itemRepo.ListByCase was just called")
	}
	mock.lockListByCase.Lock()
	mock.calls.ListByCase = append(mock.calls.ListByCase, struct{ CaseID uuid.UUID }{CaseID: caseID})
	mock.lockListByCase.Unlock()
	return mock.ListByCaseFunc(ctx, caseID)
}

func (mock *itemRepoMock) ListByCaseCalls() []struct{ CaseID uuid.UUID } {
	mock.lockListByCase.RLock()
	defer mock.lockListByCase.RUnlock()
	return mock.calls.ListByCase
}

// ---------------------------------------------------------------------------
// taskRepoMock
// ---------------------------------------------------------------------------

type taskRepoMock struct {
	CreateBatchFunc func(ctx context.Context, tasks []domain.Task) error
	ListByCaseFunc  func(ctx context.Context, caseID uuid.UUID) ([]domain.Task, error)

	calls struct {
		CreateBatch []struct {
			Tasks []domain.Task
		}
		ListByCase []struct {
			CaseID uuid.UUID
		}
	}
	lockCreateBatch sync.RWMutex
	lockListByCase  sync.RWMutex
}

func (mock *taskRepoMock) CreateBatch(ctx context.Context, tasks []domain.Task) error {
	if mock.CreateBatchFunc == nil {
		panic("taskRepoMock.CreateBatchFunc: method is nil but taskRepo.CreateBatch was just called")
	}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, struct{ Tasks []domain.Task }{Tasks: tasks})
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, tasks)
}

func (mock *taskRepoMock) CreateBatchCalls() []struct{ Tasks []domain.Task } {
	mock.lockCreateBatch.RLock()
	defer mock.lockCreateBatch.RUnlock()
	return mock.calls.CreateBatch
}

func (mock *taskRepoMock) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Task, error) {
	if mock.ListByCaseFunc == nil {
		panic("taskRepoMock.ListByCaseFunc: method is nil but taskRepo.ListByCase was just called")
	}
	mock.lockListByCase.Lock()
	mock.calls.ListByCase = append(mock.calls.ListByCase, struct{ CaseID uuid.UUID }{CaseID: caseID})
	mock.lockListByCase.Unlock()
	return mock.ListByCaseFunc(ctx, caseID)
}

func (mock *taskRepoMock) ListByCaseCalls() []struct{ CaseID uuid.UUID } {
	mock.lockListByCase.RLock()
	defer mock.lockListByCase.RUnlock()
	return mock.calls.ListByCase
}

// ---------------------------------------------------------------------------
// historyRepoMock
// ---------------------------------------------------------------------------

type historyRepoMock struct {
	AppendFunc     func(ctx context.Context, entries []domain.HistoryEntry) error
	ListByCaseFunc func(ctx context.Context, caseID uuid.UUID) ([]domain.HistoryRecord, error)

	calls struct {
		Append []struct {
			Entries []domain.HistoryEntry
		}
		ListByCase []struct {
			CaseID uuid.UUID
		}
	}
	lockAppend     sync.RWMutex
	lockListByCase sync.RWMutex
}

func (mock *historyRepoMock) Append(ctx context.Context, entries []domain.HistoryEntry) error {
	if mock.AppendFunc == nil {
		panic("historyRepoMock.AppendFunc: method is nil but historyRepo.Append was just called")
	}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, struct{ Entries []domain.HistoryEntry }{Entries: entries})
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, entries)
}

func (mock *historyRepoMock) AppendCalls() []struct{ Entries []domain.HistoryEntry } {
	mock.lockAppend.RLock()
	defer mock.lockAppend.RUnlock()
	return mock.calls.Append
}

func (mock *historyRepoMock) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.HistoryRecord, error) {
	if mock.ListByCaseFunc == nil {
		panic("historyRepoMock.ListByCaseFunc: method is nil but historyRepo.ListByCase was just called")
	}
	mock.lockListByCase.Lock()
	mock.calls.ListByCase = append(mock.calls.ListByCase, struct{ CaseID uuid.UUID }{CaseID: caseID})
	mock.lockListByCase.Unlock()
	return mock.ListByCaseFunc(ctx, caseID)
}

func (mock *historyRepoMock) ListByCaseCalls() []struct{ CaseID uuid.UUID } {
	mock.lockListByCase.RLock()
	defer mock.lockListByCase.RUnlock()
	return mock.calls.ListByCase
}

// ---------------------------------------------------------------------------
// financialRepoMock
// ---------------------------------------------------------------------------

type financialRepoMock struct {
	GetByCaseIDFunc func(ctx context.Context, caseID uuid.UUID) (*domain.FinancialSummary, error)
	UpsertFunc      func(ctx context.Context, fs domain.FinancialSummary) (*domain.FinancialSummary, error)

	calls struct {
		GetByCaseID []struct {
			CaseID uuid.UUID
		}
		Upsert []struct {
			FS domain.FinancialSummary
		}
	}
	lockGetByCaseID sync.RWMutex
	lockUpsert      sync.RWMutex
}

func (mock *financialRepoMock) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.FinancialSummary, error) {
	if mock.GetByCaseIDFunc == nil {
		panic("financialRepoMock.GetByCaseIDFunc: method is nil but financialRepo.GetByCaseID was just called")
	}
	mock.lockGetByCaseID.Lock()
	mock.calls.GetByCaseID = append(mock.calls.GetByCaseID, struct{ CaseID uuid.UUID }{CaseID: caseID})
	mock.lockGetByCaseID.Unlock()
	return mock.GetByCaseIDFunc(ctx, caseID)
}

func (mock *financialRepoMock) GetByCaseIDCalls() []struct{ CaseID uuid.UUID } {
	mock.lockGetByCaseID.RLock()
	defer mock.lockGetByCaseID.RUnlock()
	return mock.calls.GetByCaseID
}

func (mock *financialRepoMock) Upsert(ctx context.Context, fs domain.FinancialSummary) (*domain.FinancialSummary, error) {
	if mock.UpsertFunc == nil {
		panic("financialRepoMock.UpsertFunc: method is nil but financialRepo.Upsert was just called")
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ FS domain.FinancialSummary }{FS: fs})
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, fs)
}

func (mock *financialRepoMock) UpsertCalls() []struct{ FS domain.FinancialSummary } {
	mock.lockUpsert.RLock()
	defer mock.lockUpsert.RUnlock()
	return mock.calls.Upsert
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Fn func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{ Fn func(ctx context.Context) error }{Fn: fn})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{ Fn func(ctx context.Context) error } {
	mock.lockRunInTx.RLock()
	defer mock.lockRunInTx.RUnlock()
	return mock.calls.RunInTx
}
