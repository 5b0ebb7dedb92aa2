// Package metrics exposes the service's prometheus collectors on a private registry.
//
// Every recording method is safe on a nil *Metrics so components can run without
// instrumentation in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nsepulse"

// Materialization outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeTransient  = "transient_error"
	OutcomeFailed     = "error"
	OutcomeInProgress = "in_progress"
	OutcomeSkipped    = "non_trading_day"
)

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	materializations    *prometheus.CounterVec
	materializeDuration prometheus.Histogram
	rows                *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	queryFailures       *prometheus.CounterVec
}

// New builds and registers all collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		materializations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "materializations_total",
			Help:      "Materialization runs by outcome.",
		}, []string{"outcome"}),
		materializeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "materialization_duration_seconds",
			Help:      "Wall time of one materialization transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "rows_total",
			Help:      "Derived rows by table and result (written or skipped on conflict).",
		}, []string{"table", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		queryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "failures_total",
			Help:      "Failed query operations by operation and kind.",
		}, []string{"operation", "kind"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.materializations,
		m.materializeDuration,
		m.rows,
		m.httpRequests,
		m.httpDuration,
		m.queryFailures,
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveMaterialization counts one run and, for runs that reached the store, its duration.
func (m *Metrics) ObserveMaterialization(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.materializations.WithLabelValues(outcome).Inc()
	if d > 0 {
		m.materializeDuration.Observe(d.Seconds())
	}
}

// AddRows records written and skipped derived rows for a table.
func (m *Metrics) AddRows(table string, written, skipped int) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(table, "written").Add(float64(written))
	m.rows.WithLabelValues(table, "skipped").Add(float64(skipped))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// QueryFailed counts a failed query operation; kind is "transient", "malformed" or "internal".
func (m *Metrics) QueryFailed(operation, kind string) {
	if m == nil {
		return
	}
	m.queryFailures.WithLabelValues(operation, kind).Inc()
}
