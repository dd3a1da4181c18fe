// Package metrics records benchmark trials as Prometheus metrics that can be
// dropped into a node_exporter textfile directory.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the collection of trial metrics for one process.
type Metrics struct {
	registry *prometheus.Registry

	TrialDuration     *prometheus.HistogramVec
	TrialsTotal       *prometheus.CounterVec
	SkippedOperations *prometheus.CounterVec
	IntegrityFailures *prometheus.CounterVec
}

// New creates and registers the trial metrics on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TrialDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphbench_trial_duration_seconds",
			Help:    "Wall-clock duration of a single benchmark repetition",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 14),
		},
		[]string{"backend", "operation"},
	)

	m.TrialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphbench_trials_total",
			Help: "Total number of timed repetitions",
		},
		[]string{"backend", "operation"},
	)

	m.SkippedOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphbench_skipped_operations_total",
			Help: "Operations left out by a size guard or a missing capability",
		},
		[]string{"backend", "operation", "reason"},
	)

	m.IntegrityFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphbench_integrity_failures_total",
			Help: "Expected-isomorphic pairs reported as not isomorphic",
		},
		[]string{"backend"},
	)

	m.registry.MustRegister(m.TrialDuration, m.TrialsTotal, m.SkippedOperations, m.IntegrityFailures)
	return m
}

// ForBackend returns an observer that labels trials with backend.
func (m *Metrics) ForBackend(backend string) *BackendObserver {
	return &BackendObserver{m: m, backend: backend}
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// BackendObserver satisfies runner.Observer for one backend.
type BackendObserver struct {
	m       *Metrics
	backend string
}

func (o *BackendObserver) Trial(operation string, seconds float64) {
	o.m.TrialDuration.WithLabelValues(o.backend, operation).Observe(seconds)
	o.m.TrialsTotal.WithLabelValues(o.backend, operation).Inc()
}

func (o *BackendObserver) Skipped(operation, reason string) {
	o.m.SkippedOperations.WithLabelValues(o.backend, operation, reason).Inc()
}

// IntegrityFailure counts a fixture that failed its isomorphism assertion.
func (o *BackendObserver) IntegrityFailure() {
	o.m.IntegrityFailures.WithLabelValues(o.backend).Inc()
}
