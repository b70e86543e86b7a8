package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommissionMetrics tracks commission snapshot activity.
type CommissionMetrics struct {
	computed  *prometheus.CounterVec
	cacheHits prometheus.Counter
	duration  *prometheus.HistogramVec
}

// NewCommissionMetrics registers commission metrics on the provided registerer.
func NewCommissionMetrics(reg prometheus.Registerer) *CommissionMetrics {
	if reg == nil {
		return &CommissionMetrics{}
	}
	computed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commission_runs_computed_total",
		Help: "Commission runs computed and persisted, by policy type.",
	}, []string{"type"})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "commission_run_snapshot_hits_total",
		Help: "Requests served from an existing commission snapshot.",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commission_compute_duration_seconds",
		Help:    "Duration of commission computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})
	reg.MustRegister(computed, cacheHits, duration)
	return &CommissionMetrics{
		computed:  computed,
		cacheHits: cacheHits,
		duration:  duration,
	}
}

// IncComputed increments the computed counter for the policy type.
func (m *CommissionMetrics) IncComputed(policyType string) {
	if m == nil || m.computed == nil {
		return
	}
	m.computed.WithLabelValues(normalizeLabel(policyType)).Inc()
}

// IncSnapshotHit increments the snapshot-hit counter.
func (m *CommissionMetrics) IncSnapshotHit() {
	if m == nil || m.cacheHits == nil {
		return
	}
	m.cacheHits.Inc()
}

// ObserveCompute records the duration of one computation.
func (m *CommissionMetrics) ObserveCompute(policyType string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(policyType)).Observe(duration.Seconds())
}
