package compliance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

var (
	_ caseReader = &caseReaderMock{}
	_ itemRepo   = &itemRepoMock{}
)

type caseReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Case, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *caseReaderMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if mock.GetByIDFunc == nil {
		panic("caseReaderMock.GetByIDFunc: method is nil but caseReader.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{ID: id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *caseReaderMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	defer mock.lockGetByID.RUnlock()
	return mock.calls.GetByID
}

type itemRepoMock struct {
	GetByIDFunc     func(ctx context.Context, caseID, itemID uuid.UUID) (*domain.ComplianceItem, error)
	ListByCaseFunc  func(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error)
	ListOverdueFunc func(ctx context.Context, now time.Time, limit int) ([]domain.OverdueItem, error)
	CreateFunc      func(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error)
	UpdateFunc      func(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error)
	DeleteFunc      func(ctx context.Context, caseID, itemID uuid.UUID) error

	calls struct {
		ListByCase  []struct{ CaseID uuid.UUID }
		ListOverdue []struct {
			Now   time.Time
			Limit int
		}
		Create []struct{ Item domain.ComplianceItem }
		Update []struct{ Item domain.ComplianceItem }
		Delete []struct{ CaseID, ItemID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *itemRepoMock) GetByID(ctx context.Context, caseID, itemID uuid.UUID) (*domain.ComplianceItem, error) {
	if mock.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, caseID, itemID)
}

func (mock *itemRepoMock) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error) {
	if mock.ListByCaseFunc == nil {
		panic("itemRepoMock.ListByCaseFunc: method is nil but itemRepo.ListByCase was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByCase = append(mock.calls.ListByCase, struct{ CaseID uuid.UUID }{CaseID: caseID})
	mock.lock.Unlock()
	return mock.ListByCaseFunc(ctx, caseID)
}

func (mock *itemRepoMock) ListByCaseCalls() []struct{ CaseID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListByCase
}

func (mock *itemRepoMock) ListOverdue(ctx context.Context, now time.Time, limit int) ([]domain.OverdueItem, error) {
	if mock.ListOverdueFunc == nil {
		panic("itemRepoMock.ListOverdueFunc: method is nil but itemRepo.ListOverdue was just called")
	}
	mock.lock.Lock()
	mock.calls.ListOverdue = append(mock.calls.ListOverdue, struct {
		Now   time.Time
		Limit int
	}{Now: now, Limit: limit})
	mock.lock.Unlock()
	return mock.ListOverdueFunc(ctx, now, limit)
}

func (mock *itemRepoMock) ListOverdueCalls() []struct {
	Now   time.Time
	Limit int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListOverdue
}

func (mock *itemRepoMock) Create(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error) {
	if mock.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Item domain.ComplianceItem }{Item: item})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *itemRepoMock) CreateCalls() []struct{ Item domain.ComplianceItem } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *itemRepoMock) Update(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error) {
	if mock.UpdateFunc == nil {
		panic("itemRepoMock.UpdateFunc: method is nil but itemRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ Item domain.ComplianceItem }{Item: item})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, item)
}

func (mock *itemRepoMock) UpdateCalls() []struct{ Item domain.ComplianceItem } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *itemRepoMock) Delete(ctx context.Context, caseID, itemID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("itemRepoMock.DeleteFunc: method is nil but itemRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ CaseID, ItemID uuid.UUID }{CaseID: caseID, ItemID: itemID})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, caseID, itemID)
}

func (mock *itemRepoMock) DeleteCalls() []struct{ CaseID, ItemID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
