package client

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh outcomes recorded by Metrics.
const (
	RefreshSucceeded = "success"
	RefreshFailed    = "failure"
	RefreshSkipped   = "no_refresh_token"
	RefreshReused    = "reused_newer_token"
)

// Metrics counts API traffic. A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics registers the client collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "followupdesk",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests sent, by method and status code (0 for transport errors).",
		}, []string{"method", "code"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "followupdesk",
			Subsystem: "client",
			Name:      "token_refreshes_total",
			Help:      "Access-token refresh cycles, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "followupdesk",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.requests, m.refreshes, m.duration)
	return m
}

func (m *Metrics) observeRequest(method string, code int, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method).Observe(seconds)
}

func (m *Metrics) observeRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}
