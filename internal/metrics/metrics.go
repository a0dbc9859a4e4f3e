package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "caseledger"

// Metrics provides observability for the case lifecycle engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CasesCreated     prometheus.Counter
	CasesClosed      prometheus.Counter
	ClosureBlocked   *prometheus.CounterVec
	VersionConflicts *prometheus.CounterVec
	HistoryEntries   prometheus.Counter
	ItemMutations    *prometheus.CounterVec

	OperationLatency *prometheus.HistogramVec

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		CasesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_created_total",
			Help:      "Cases created, including seeded children",
		}),
		CasesClosed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_closed_total",
			Help:      "Cases that passed the closure gate",
		}),
		ClosureBlocked: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "closure_blocked_total",
			Help:      "Close attempts rejected by the closure gate, by reason",
		}, []string{"reason"}), // reason: "mandatory_items", "balance_due"

		VersionConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "version_conflicts_total",
			Help:      "Writes rejected because they were based on stale case state",
		}, []string{"operation"}),

		HistoryEntries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_entries_total",
			Help:      "Field-level history entries written",
		}),
		ItemMutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compliance_item_mutations_total",
			Help:      "Compliance item writes by operation",
		}, []string{"operation"}), // operation: "create", "patch", "delete"

		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations by name and outcome code",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation", "code"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// IncCaseCreated records a created case.
func (m *Metrics) IncCaseCreated() {
	if m != nil {
		m.CasesCreated.Inc()
	}
}

// IncCaseClosed records a closed case.
func (m *Metrics) IncCaseClosed() {
	if m != nil {
		m.CasesClosed.Inc()
	}
}

// IncClosureBlocked records a blocked close attempt for one reason.
func (m *Metrics) IncClosureBlocked(reason string) {
	if m != nil {
		m.ClosureBlocked.WithLabelValues(reason).Inc()
	}
}

// IncVersionConflict records a stale write.
func (m *Metrics) IncVersionConflict(operation string) {
	if m != nil {
		m.VersionConflicts.WithLabelValues(operation).Inc()
	}
}

// AddHistoryEntries records n written history entries.
func (m *Metrics) AddHistoryEntries(n int) {
	if m != nil && n > 0 {
		m.HistoryEntries.Add(float64(n))
	}
}

// IncItemMutation records a compliance item write.
func (m *Metrics) IncItemMutation(operation string) {
	if m != nil {
		m.ItemMutations.WithLabelValues(operation).Inc()
	}
}

// ObserveOperation records the duration of a service operation since start.
func (m *Metrics) ObserveOperation(operation, code string, start time.Time) {
	if m != nil {
		if code == "" {
			code = "OK"
		}
		m.OperationLatency.WithLabelValues(operation, code).Observe(time.Since(start).Seconds())
	}
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
	}
}
