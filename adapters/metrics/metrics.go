// Package metrics provides Prometheus metrics collection for the admin
// interface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for admingate.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Auth metrics
	AuthFailures prometheus.Counter

	// Registry metrics
	RegistryRebuilds      prometheus.Counter
	RegistryRebuildErrors prometheus.Counter
	ResourcesDecorated    prometheus.Gauge
}

// New creates a new metrics collector registered on the default
// registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "admingate",
				Name:      "requests_total",
				Help:      "Total number of admin API requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "admingate",
				Name:      "request_duration_seconds",
				Help:      "Admin API request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "admingate",
				Name:      "requests_in_flight",
				Help:      "Number of admin API requests currently being processed",
			},
		),
		AuthFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "admingate",
				Name:      "auth_failures_total",
				Help:      "Total number of failed admin logins",
			},
		),
		RegistryRebuilds: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "admingate",
				Name:      "registry_rebuilds_total",
				Help:      "Total number of resource registry rebuilds",
			},
		),
		RegistryRebuildErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "admingate",
				Name:      "registry_rebuild_errors_total",
				Help:      "Total number of failed resource registry rebuilds",
			},
		),
		ResourcesDecorated: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "admingate",
				Name:      "resources_decorated",
				Help:      "Number of resources in the active registry",
			},
		),
	}
}
