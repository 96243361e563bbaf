// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns a private registry so tests can build as many as they like.
type Manager struct {
	Registry      *prometheus.Registry
	StoreRequests *prometheus.CounterVec   // by operation and result status
	StoreLatency  *prometheus.HistogramVec // by operation
	PageRenders   *prometheus.CounterVec   // by view and state
}

// NewManager creates and registers the collectors under the given namespace.
func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	storeRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_requests_total",
		Help:      "Article store calls by operation and result status.",
	}, []string{"op", "status"})

	storeLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_request_duration_seconds",
		Help:      "Latency of article store calls by operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	pageRenders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_renders_total",
		Help:      "Rendered pages by view and final view state.",
	}, []string{"view", "state"})

	registry.MustRegister(
		storeRequests,
		storeLatency,
		pageRenders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:      registry,
		StoreRequests: storeRequests,
		StoreLatency:  storeLatency,
		PageRenders:   pageRenders,
	}
}

// ObserveStoreCall records one finished store call.
func (m *Manager) ObserveStoreCall(op, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.StoreRequests.WithLabelValues(op, status).Inc()
	m.StoreLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObservePageRender records one rendered page.
func (m *Manager) ObservePageRender(view, state string) {
	if m == nil {
		return
	}
	m.PageRenders.WithLabelValues(view, state).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
