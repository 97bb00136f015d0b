package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cyclus-go/cyclus/internal/application/common"
)

// CommandMetricsCollector records mediator dispatch duration and
// success/failure counts, keyed by command name. Every Timekeeper
// command (RunTickCommand, ResolveMarketsCommand, DrainCommand,
// RunTockCommand) passes through this middleware.
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	results  *prometheus.CounterVec
}

// NewCommandMetricsCollector constructs and registers the collector
// against reg.
func NewCommandMetricsCollector(reg *prometheus.Registry) *CommandMetricsCollector {
	c := &CommandMetricsCollector{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "command", Name: "duration_seconds",
			Help:    "Command dispatch duration in seconds, by command name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "command", Name: "results_total",
			Help: "Command dispatch outcomes, by command name and success.",
		}, []string{"command", "success"}),
	}
	reg.MustRegister(c.duration, c.results)
	return c
}

// RecordCommandExecution records one dispatch's duration and outcome.
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, durationSeconds float64, success bool) {
	c.duration.WithLabelValues(commandName).Observe(durationSeconds)
	successLabel := "true"
	if !success {
		successLabel = "false"
	}
	c.results.WithLabelValues(commandName, successLabel).Inc()
}

// PrometheusMiddleware wraps mediator dispatch, recording duration and
// success/failure for every command. Command names are extracted via
// reflection and simplified to drop package prefixes, e.g.
// "*simulation.RunTickCommand" becomes "RunTickCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		duration := time.Since(start).Seconds()
		collector.RecordCommandExecution(commandName, duration, err == nil)

		return response, err
	}
}

func extractCommandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	requestType := reflect.TypeOf(request)
	fullName := strings.TrimPrefix(requestType.String(), "*")
	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return fullName
}
