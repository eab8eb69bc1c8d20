package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records request outcomes.
type Metrics interface {
	RecordRequest(method, resource string, status int, duration time.Duration)
}

type noopMetrics struct{}

// NewNoop returns a Metrics that records nothing.
func NewNoop() Metrics { return noopMetrics{} }

func (noopMetrics) RecordRequest(string, string, int, time.Duration) {}

// PrometheusMetrics exports request counters and latencies.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the client collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esportivo",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "API requests by method, resource and status code. Status 0 means no response.",
		}, []string{"method", "resource", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "esportivo",
			Subsystem: "api_client",
			Name:      "request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordRequest implements Metrics.
func (m *PrometheusMetrics) RecordRequest(method, resource string, status int, duration time.Duration) {
	m.requests.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, resource).Observe(duration.Seconds())
}
