package cases

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/metrics"
	"github.com/heartmarshall/caseledger-backend/internal/telemetry"
)

type caseRepo interface {
	Create(ctx context.Context, c domain.Case) (*domain.Case, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	List(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int, error)
	Update(ctx context.Context, c domain.Case, expectedVersion int) (*domain.Case, error)
	Close(ctx context.Context, id uuid.UUID, expectedVersion int, at time.Time) (*domain.Case, error)
}

type itemRepo interface {
	CreateBatch(ctx context.Context, items []domain.ComplianceItem) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error)
}

type taskRepo interface {
	CreateBatch(ctx context.Context, tasks []domain.Task) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Task, error)
}

type historyRepo interface {
	Append(ctx context.Context, entries []domain.HistoryEntry) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.HistoryRecord, error)
}

type financialRepo interface {
	GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.FinancialSummary, error)
	Upsert(ctx context.Context, fs domain.FinancialSummary) (*domain.FinancialSummary, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var tracer = telemetry.Tracer("caseledger/service/cases")

// Config holds lifecycle policy for the case service.
type Config struct {
	Seed       domain.SeedPolicy
	CloseRoles []domain.Role
	Metrics    *metrics.Metrics
}

// Service implements the case lifecycle: creation with seeded children,
// version-guarded updates with a field-level history, and gated closure.
type Service struct {
	cases      caseRepo
	items      itemRepo
	tasks      taskRepo
	history    historyRepo
	financials financialRepo
	tx         txManager
	log        *slog.Logger
	metrics    *metrics.Metrics
	seed       domain.SeedPolicy
	closeRoles []domain.Role
	now        func() time.Time
}

// NewService creates a new case service.
func NewService(
	log *slog.Logger,
	cases caseRepo,
	items itemRepo,
	tasks taskRepo,
	history historyRepo,
	financials financialRepo,
	tx txManager,
	cfg Config,
) *Service {
	seed := cfg.Seed
	if seed == nil {
		seed = domain.StandardSeedPolicy(domain.DefaultSeedOffsets())
	}
	return &Service{
		cases:      cases,
		items:      items,
		tasks:      tasks,
		history:    history,
		financials: financials,
		tx:         tx,
		log:        log.With("service", "cases"),
		metrics:    cfg.Metrics,
		seed:       seed,
		closeRoles: cfg.CloseRoles,
		now:        time.Now,
	}
}

// startOp opens a span for one operation. The returned func must be deferred
// with a pointer to the operation's named error.
func (s *Service) startOp(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "cases."+op, trace.WithAttributes(attrs...))
	return ctx, func(errp *error) {
		telemetry.End(span, *errp)
		s.metrics.ObserveOperation(op, domain.CodeOf(*errp).String(), start)
	}
}

// clock returns the current time truncated to the precision PostgreSQL stores.
func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
