package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bitmark-inc/immunity-api/validity"
)

// Metrics provides observability for validity computations.
// A nil *Metrics records nothing.
type Metrics struct {
	ComputeDuration *prometheus.HistogramVec
	ComputeFailures *prometheus.CounterVec
	RangesComputed  *prometheus.CounterVec
	IssuesReported  *prometheus.CounterVec
	SnapshotsStored prometheus.Counter
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ComputeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "immunity_validity_compute_duration_seconds",
			Help:    "Duration of validity computations by scope",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}, []string{"scope"}),
		ComputeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "immunity_validity_compute_failures_total",
			Help: "Total number of validity computations that could not load their input",
		}, []string{"scope"}),
		RangesComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "immunity_validity_ranges_total",
			Help: "Total number of validity ranges computed by rule family",
		}, []string{"rule"}),
		IssuesReported: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "immunity_validity_issues_total",
			Help: "Total number of records skipped by kind",
		}, []string{"kind"}),
		SnapshotsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "immunity_validity_snapshots_stored_total",
			Help: "Total number of person validity snapshots written",
		}),
	}
}

// ObserveCompute records the outcome of one computation.
// Call with time.Now() at the start of the computation.
func (m *Metrics) ObserveCompute(scope validity.Scope, start time.Time, result *validity.Result, err error) {
	if m == nil {
		return
	}

	m.ComputeDuration.WithLabelValues(scope.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		m.ComputeFailures.WithLabelValues(scope.String()).Inc()
		return
	}

	for _, r := range result.Ranges {
		m.RangesComputed.WithLabelValues(string(r.Rule)).Inc()
	}
	for _, i := range result.Issues {
		m.IssuesReported.WithLabelValues(i.Kind).Inc()
	}
}

// IncrementSnapshotsStored records a written snapshot.
func (m *Metrics) IncrementSnapshotsStored() {
	if m == nil {
		return
	}
	m.SnapshotsStored.Inc()
}
