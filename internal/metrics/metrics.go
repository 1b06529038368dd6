package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_generations_total",
			Help: "Dataset generation runs by result",
		},
		[]string{"result"}, // ok|error
	)

	GeneratedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "churn_generated_records_total",
			Help: "Customer records produced by successful generation runs",
		},
	)

	GenerationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churn_generation_seconds",
			Help:    "Wall time of a dataset generation run",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_http_requests_total",
			Help: "API requests by route and status code",
		},
		[]string{"route", "code"},
	)
)

var registerOnce sync.Once

// MustRegister registers the collectors once; repeated calls are no-ops so
// several servers can share a registerer in one process.
func MustRegister(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(
			GenerationsTotal,
			GeneratedRecordsTotal,
			GenerationSeconds,
			HTTPRequestsTotal,
		)
	})
}
