// Package metrics defines the Prometheus instruments exported by formdesk.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every instrument. Each instance owns its registry, so tests
// and several servers in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	// EntriesCreated counts entries added through a submit.
	EntriesCreated prometheus.Counter

	// EntriesUpdated counts entries replaced through an edit submit.
	EntriesUpdated prometheus.Counter

	// EntriesDeleted counts removed entries.
	EntriesDeleted prometheus.Counter

	// SubmitRejected counts invalid submits by failing field.
	SubmitRejected *prometheus.CounterVec

	// Exports counts CSV exports by result (ok|empty|error).
	Exports *prometheus.CounterVec

	// ActiveSessions tracks live page sessions.
	ActiveSessions prometheus.Gauge

	// RequestLatency measures HTTP handler latency.
	RequestLatency *prometheus.HistogramVec
}

// New creates the instruments on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		EntriesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "formdesk_entries_created_total",
			Help: "Total number of entries created",
		}),
		EntriesUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "formdesk_entries_updated_total",
			Help: "Total number of entries updated",
		}),
		EntriesDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "formdesk_entries_deleted_total",
			Help: "Total number of entries deleted",
		}),
		SubmitRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "formdesk_submit_rejected_total",
			Help: "Invalid submits, by failing field",
		}, []string{"field"}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "formdesk_csv_exports_total",
			Help: "CSV exports, by result",
		}, []string{"result"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "formdesk_active_sessions",
			Help: "Number of live page sessions",
		}),
		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "formdesk_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
