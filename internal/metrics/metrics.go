// Package metrics records operation counters and latencies for parameter
// store backends. Metrics are opt-in: nothing is registered with the
// Prometheus default registry until Init is called.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	// Registration guard
	metricsOnce sync.Once
	enabled     atomic.Bool
)

// Init registers all Prometheus metrics with the default registry.
// Call once at startup if metrics are enabled; repeated calls are no-ops.
func Init() {
	metricsOnce.Do(func() {
		operationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envstore_operations_total",
				Help: "Total number of parameter store operations",
			},
			[]string{"backend", "operation", "status"},
		)

		operationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "envstore_operation_duration_seconds",
				Help:    "Duration of parameter store operations in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"backend", "operation"},
		)

		enabled.Store(true)
	})
}

// Recorder records per-operation metrics for one backend.
type Recorder struct {
	backend string
}

// NewRecorder creates a recorder labeled with the backend name.
func NewRecorder(backend string) *Recorder {
	return &Recorder{backend: backend}
}

// Observe records one completed operation. It is a no-op until Init has run.
func (r *Recorder) Observe(operation string, start time.Time, err error) {
	if !enabled.Load() {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
	}

	operationsTotal.WithLabelValues(r.backend, operation, status).Inc()
	operationDuration.WithLabelValues(r.backend, operation).Observe(time.Since(start).Seconds())
}
