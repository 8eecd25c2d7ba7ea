package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcome labels recorded by the service layer.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeNotFound        = "not_found"
	OutcomeStorageError    = "storage_error"
)

// Metrics bundles the collectors the service and HTTP layers update. All
// collectors register against the registerer passed to New, so tests can
// use a private registry.
type Metrics struct {
	httpRequestsTotal        *prometheus.CounterVec
	httpRequestDuration      *prometheus.HistogramVec
	feedbackOperationsTotal  *prometheus.CounterVec
	feedbackOperationSeconds *prometheus.HistogramVec
	feedbackCount            prometheus.Gauge
	errorsTotal              *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		feedbackOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_operations_total",
			Help: "Total feedback operations",
		}, []string{"operation", "outcome"}),
		feedbackOperationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedback_operation_duration_seconds",
			Help:    "Feedback operation duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		feedbackCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedback_count",
			Help: "Current feedback count",
		}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total errors",
		}, []string{"error_type"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.feedbackOperationsTotal,
		m.feedbackOperationSeconds,
		m.feedbackCount,
		m.errorsTotal,
	)
	return m
}

// RecordHTTPRequest counts a finished request and observes its duration.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, status int, d time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// RecordOperation counts one service-level operation by outcome and
// observes its duration. This is the contract external scrapers depend on.
func (m *Metrics) RecordOperation(operation, outcome string, d time.Duration) {
	m.feedbackOperationsTotal.WithLabelValues(operation, outcome).Inc()
	m.feedbackOperationSeconds.WithLabelValues(operation).Observe(d.Seconds())
}

// SetFeedbackCount updates the current feedback count gauge.
func (m *Metrics) SetFeedbackCount(n int64) {
	m.feedbackCount.Set(float64(n))
}

// RecordError counts an error by type.
func (m *Metrics) RecordError(errorType string) {
	m.errorsTotal.WithLabelValues(errorType).Inc()
}
