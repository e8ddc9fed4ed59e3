package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "wallet"
	subsystem = "ledger"
)

// Outcome labels shared by the counters.
const (
	OutcomeSuccess          = "success"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeIgnored          = "ignored"
	OutcomeInvalidAmount    = "invalid_amount"
	OutcomeInsufficient     = "insufficient_funds"
	OutcomeMismatch         = "mismatch"
	OutcomeNotFound         = "not_found"
	OutcomeRejected         = "rejected"
	OutcomeUnavailable      = "unavailable"
	OutcomeError            = "error"
)

// Metrics holds the ledger's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	applyTotal          *prometheus.CounterVec
	finalizeTotal       *prometheus.CounterVec
	verifyDuration      *prometheus.HistogramVec
	pendingExpiredTotal prometheus.Counter
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		applyTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "apply_total",
				Help:      "Ledger apply attempts partitioned by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		finalizeTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "finalize_total",
				Help:      "External payment finalize attempts partitioned by path and outcome.",
			},
			[]string{"path", "outcome"},
		),
		verifyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "verify_duration_seconds",
				Help:      "Latency of payment provider verification calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		pendingExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pending_expired_total",
				Help:      "Pending top-ups marked failed by the sweeper.",
			},
		),
	}
}

func (m *Metrics) ObserveApply(kind, outcome string) {
	if m == nil {
		return
	}
	m.applyTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveFinalize(path, outcome string) {
	if m == nil {
		return
	}
	m.finalizeTotal.WithLabelValues(path, outcome).Inc()
}

func (m *Metrics) ObserveVerify(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.verifyDuration.WithLabelValues(outcome).Observe(took.Seconds())
}

func (m *Metrics) AddPendingExpired(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.pendingExpiredTotal.Add(float64(n))
}
