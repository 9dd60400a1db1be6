package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/appointly/booking-mcp"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Tool call metrics
	ToolCallsTotal      metric.Int64Counter
	ToolCallErrorsTotal metric.Int64Counter
	ToolCallDuration    metric.Float64Histogram

	// Session metrics
	ActiveSessions metric.Int64UpDownCounter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.ToolCallsTotal, _ = meter.Int64Counter(
		"booking.tools.calls.total",
		metric.WithDescription("Total number of tool calls"),
		metric.WithUnit("{call}"),
	)

	m.ToolCallErrorsTotal, _ = meter.Int64Counter(
		"booking.tools.errors.total",
		metric.WithDescription("Total number of tool calls returning a failure envelope"),
		metric.WithUnit("{error}"),
	)

	m.ToolCallDuration, _ = meter.Float64Histogram(
		"booking.tools.duration",
		metric.WithDescription("Duration of tool calls"),
		metric.WithUnit("ms"),
	)

	m.ActiveSessions, _ = meter.Int64UpDownCounter(
		"booking.sessions.active",
		metric.WithDescription("Number of active MCP sessions"),
		metric.WithUnit("{session}"),
	)

	return m
}
