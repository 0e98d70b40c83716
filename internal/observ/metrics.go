package observ

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RealtimeConnections prometheus.Gauge
	RealtimeBroadcasts  *prometheus.CounterVec
	RealtimeDropped     prometheus.Counter

	AccessDecisions *prometheus.CounterVec
	LikeToggles     prometheus.Counter
	SearchQueries   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a fresh registry,
// together with the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventra_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventra_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RealtimeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventra_realtime_connections",
			Help: "Currently open discussion websocket connections",
		}),
		RealtimeBroadcasts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventra_realtime_broadcasts_total",
				Help: "Discussion posts fanned out, by outcome (delivered, no_subscribers)",
			},
			[]string{"outcome"},
		),
		RealtimeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventra_realtime_dropped_clients_total",
			Help: "Clients disconnected because their send buffer was full",
		}),
		AccessDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventra_access_decisions_total",
				Help: "Edit permission checks by source of the decision",
			},
			[]string{"decision"},
		),
		LikeToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventra_like_toggles_total",
			Help: "Item like toggles",
		}),
		SearchQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventra_search_queries_total",
				Help: "Search requests by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RealtimeConnections,
		m.RealtimeBroadcasts,
		m.RealtimeDropped,
		m.AccessDecisions,
		m.LikeToggles,
		m.SearchQueries,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
