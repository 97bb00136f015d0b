// Package metrics wires the simulation core's observable events into
// Prometheus, grounded on the teacher's own adapters/metrics package:
// a global registry singleton plus a recorder interface the
// application layer depends on rather than importing Prometheus
// directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "cyclus"
	subsystem = "simulation"
)

var (
	// Registry is the global Prometheus registry for all metrics.
	Registry *prometheus.Registry

	globalCollector SimulationMetricsRecorder
)

// SimulationMetricsRecorder is the interface application-layer code
// depends on to record simulation events, keeping the domain/application
// packages free of a direct Prometheus import.
type SimulationMetricsRecorder interface {
	RecordTickProcessed(period int)
	RecordTockProcessed(period int)
	RecordMessageRouted(direction string)
	RecordResourceTransferred(commodity string, quantity float64)
	RecordMatch(commodity string)
	RecordConservationFailure(commodity string)
}

// InitRegistry initializes the Prometheus registry. Called once at
// startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, or nil if metrics
// are not initialized.
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled reports whether metrics collection is enabled.
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalCollector sets the global metrics collector, called once the
// collector has been constructed and registered.
func SetGlobalCollector(collector SimulationMetricsRecorder) {
	globalCollector = collector
}

// RecordTickProcessed records a completed tick phase globally.
func RecordTickProcessed(period int) {
	if globalCollector != nil {
		globalCollector.RecordTickProcessed(period)
	}
}

// RecordTockProcessed records a completed tock phase globally.
func RecordTockProcessed(period int) {
	if globalCollector != nil {
		globalCollector.RecordTockProcessed(period)
	}
}

// RecordMessageRouted records one message hop globally, tagged by
// routing direction (UP/DOWN).
func RecordMessageRouted(direction string) {
	if globalCollector != nil {
		globalCollector.RecordMessageRouted(direction)
	}
}

// RecordResourceTransferred records a physical material transfer
// globally.
func RecordResourceTransferred(commodity string, quantity float64) {
	if globalCollector != nil {
		globalCollector.RecordResourceTransferred(commodity, quantity)
	}
}

// RecordMatch records a cleared offer/request pair globally.
func RecordMatch(commodity string) {
	if globalCollector != nil {
		globalCollector.RecordMatch(commodity)
	}
}

// RecordConservationFailure records a conservation-invariant violation
// globally.
func RecordConservationFailure(commodity string) {
	if globalCollector != nil {
		globalCollector.RecordConservationFailure(commodity)
	}
}

// PrometheusCollector is the concrete SimulationMetricsRecorder backed
// by a set of Prometheus collectors registered against Registry.
type PrometheusCollector struct {
	ticksProcessed        prometheus.Counter
	tocksProcessed        prometheus.Counter
	messagesRouted        *prometheus.CounterVec
	resourcesTransferred  *prometheus.CounterVec
	matches               *prometheus.CounterVec
	conservationFailures  *prometheus.CounterVec
}

// NewPrometheusCollector constructs and registers every metric against
// reg.
func NewPrometheusCollector(reg *prometheus.Registry) *PrometheusCollector {
	c := &PrometheusCollector{
		ticksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "ticks_total",
			Help: "Total number of tick phases processed.",
		}),
		tocksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "tocks_total",
			Help: "Total number of tock phases processed.",
		}),
		messagesRouted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "messages_routed_total",
			Help: "Total number of message hops, by direction.",
		}, []string{"direction"}),
		resourcesTransferred: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "resources_transferred_total",
			Help: "Total quantity of material physically transferred, by commodity.",
		}, []string{"commodity"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "matches_total",
			Help: "Total number of cleared offer/request pairs, by commodity.",
		}, []string{"commodity"}),
		conservationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "conservation_failures_total",
			Help: "Total number of conservation-invariant violations detected, by commodity.",
		}, []string{"commodity"}),
	}

	reg.MustRegister(c.ticksProcessed, c.tocksProcessed, c.messagesRouted, c.resourcesTransferred, c.matches, c.conservationFailures)
	return c
}

func (c *PrometheusCollector) RecordTickProcessed(period int) { c.ticksProcessed.Inc() }
func (c *PrometheusCollector) RecordTockProcessed(period int) { c.tocksProcessed.Inc() }
func (c *PrometheusCollector) RecordMessageRouted(direction string) {
	c.messagesRouted.WithLabelValues(direction).Inc()
}
func (c *PrometheusCollector) RecordResourceTransferred(commodity string, quantity float64) {
	c.resourcesTransferred.WithLabelValues(commodity).Add(quantity)
}
func (c *PrometheusCollector) RecordMatch(commodity string) {
	c.matches.WithLabelValues(commodity).Inc()
}
func (c *PrometheusCollector) RecordConservationFailure(commodity string) {
	c.conservationFailures.WithLabelValues(commodity).Inc()
}
