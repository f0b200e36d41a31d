package provider

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-provider request counts and latencies.
type Metrics struct {
	requests  *prometheus.CounterVec
	failures  *prometheus.CounterVec
	latencies *prometheus.HistogramVec
}

// NewMetrics creates the provider metric set and registers it with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aihub_provider_requests_total",
			Help: "Total provider calls by capability and provider.",
		}, []string{"capability", "provider"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aihub_provider_failures_total",
			Help: "Failed provider calls by capability and provider.",
		}, []string{"capability", "provider"}),
		latencies: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aihub_provider_latency_seconds",
			Help:    "Provider call latency by capability and provider.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
		}, []string{"capability", "provider"}),
	}

	reg.MustRegister(m.requests, m.failures, m.latencies)
	return m
}

// Observe records one provider call.
func (m *Metrics) Observe(capability, providerName string, start time.Time, err error) {
	m.requests.WithLabelValues(capability, providerName).Inc()
	if err != nil {
		m.failures.WithLabelValues(capability, providerName).Inc()
	}
	m.latencies.WithLabelValues(capability, providerName).Observe(time.Since(start).Seconds())
}
