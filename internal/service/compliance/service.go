package compliance

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

const (
	DefaultOverdueLimit = 100
	MaxOverdueLimit     = 1000
)

type caseReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
}

type itemRepo interface {
	GetByID(ctx context.Context, caseID, itemID uuid.UUID) (*domain.ComplianceItem, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.ComplianceItem, error)
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]domain.OverdueItem, error)
	Create(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error)
	Update(ctx context.Context, item domain.ComplianceItem) (*domain.ComplianceItem, error)
	Delete(ctx context.Context, caseID, itemID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var tracer = telemetry.Tracer("caseledger/service/compliance")

// Service manages the compliance items of a case. Item edits do not touch
// the case version and are not recorded in the case history.
type Service struct {
	cases   caseReader
	items   itemRepo
	tx      txManager
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService creates a new compliance item service.
func NewService(
	log *slog.Logger,
	cases caseReader,
	items itemRepo,
	tx txManager,
	m *metrics.Metrics,
) *Service {
	return &Service{
		cases:   cases,
		items:   items,
		tx:      tx,
		log:     log.With("service", "compliance"),
		metrics: m,
		now:     time.Now,
	}
}

func (s *Service) startOp(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "compliance."+op, trace.WithAttributes(attrs...))
	return ctx, func(errp *error) {
		telemetry.End(span, *errp)
		s.metrics.ObserveOperation(op, domain.CodeOf(*errp).String(), start)
	}
}

func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
