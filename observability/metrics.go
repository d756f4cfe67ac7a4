// Package observability exposes Prometheus metrics for governance
// validation and model ingestion.
package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	governanceValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semarch",
			Subsystem: "governance",
			Name:      "validations_total",
			Help:      "Total governance validations.",
		},
		[]string{"mode", "outcome"},
	)
	governanceViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semarch",
			Subsystem: "governance",
			Name:      "violations_total",
			Help:      "Governance findings by deciding rule.",
		},
		[]string{"rule"},
	)
	validationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "semarch",
			Subsystem: "governance",
			Name:      "validation_duration_seconds",
			Help:      "Governance validation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
	modelSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semarch",
			Subsystem: "models",
			Name:      "submissions_total",
			Help:      "Model submissions by pipeline outcome.",
		},
		[]string{"outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(governanceValidations, governanceViolations, validationDuration, modelSubmissions)
	})
}

func RecordValidation(mode, outcome string, duration time.Duration) {
	RegisterMetrics()
	governanceValidations.WithLabelValues(mode, outcome).Inc()
	validationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func RecordViolations(rule string, count int) {
	if count <= 0 {
		return
	}
	RegisterMetrics()
	governanceViolations.WithLabelValues(rule).Add(float64(count))
}

func RecordSubmission(outcome string) {
	RegisterMetrics()
	modelSubmissions.WithLabelValues(outcome).Inc()
}
