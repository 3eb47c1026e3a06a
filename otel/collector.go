// Package otel provides OpenTelemetry integration for anchorage domain
// reclamation metrics.
//
// This package implements the anchorage.MetricsCollector interface using
// OpenTelemetry, so retire/reclaim activity can be exported to any OTEL
// backend (Prometheus, Jaeger, DataDog, Grafana) without anchorage itself
// depending on OTEL.
//
// # Usage
//
//	import (
//	    "github.com/agilira/anchorage"
//	    anchorageotel "github.com/agilira/anchorage/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//
//	collector, _ := anchorageotel.NewOTelMetricsCollector(provider)
//	domain := anchorage.NewScopedDomain(anchorage.SystemAllocator{})
//	_ = collector
//	_ = domain
//
// # Metrics Exposed
//
//   - anchorage_retired_total: Counter of values handed to Retire
//   - anchorage_bulk_reclaims_total: Counter of bulk reclamation passes
//   - anchorage_reclaimed_total: Counter of values actually reclaimed
//   - anchorage_bulk_reclaim_duration_ns: Histogram of bulk reclaim durations
//   - anchorage_slot_count: Gauge-like observation of live hazard slot count
package otel

import (
	"context"
	"errors"

	"github.com/agilira/anchorage"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements anchorage.MetricsCollector using
// OpenTelemetry.
//
// Thread-safety: safe for concurrent use. The underlying OTEL instruments
// are thread-safe and lock-free.
type OTelMetricsCollector struct {
	retired        metric.Int64Counter
	bulkReclaims   metric.Int64Counter
	reclaimed      metric.Int64Counter
	reclaimLatency metric.Int64Histogram
	slotCount      metric.Int64Histogram
}

// Options configures an OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/anchorage"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom name for the meter the collector's
// instruments are registered under.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a new OpenTelemetry metrics collector for
// anchorage domain reclamation.
//
// provider must not be nil. Returns an error if any OTEL instrument fails
// to register.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/anchorage"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	collector := &OTelMetricsCollector{}

	var err error
	collector.retired, err = meter.Int64Counter(
		"anchorage_retired_total",
		metric.WithDescription("Total number of values handed to Retire"),
	)
	if err != nil {
		return nil, err
	}

	collector.bulkReclaims, err = meter.Int64Counter(
		"anchorage_bulk_reclaims_total",
		metric.WithDescription("Total number of bulk reclamation passes"),
	)
	if err != nil {
		return nil, err
	}

	collector.reclaimed, err = meter.Int64Counter(
		"anchorage_reclaimed_total",
		metric.WithDescription("Total number of values actually reclaimed"),
	)
	if err != nil {
		return nil, err
	}

	collector.reclaimLatency, err = meter.Int64Histogram(
		"anchorage_bulk_reclaim_duration_ns",
		metric.WithDescription("Duration of bulk reclaim passes in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.slotCount, err = meter.Int64Histogram(
		"anchorage_slot_count",
		metric.WithDescription("Observed size of a domain's hazard slot pool"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// ObserveRetire records one value handed to Retire.
func (c *OTelMetricsCollector) ObserveRetire() {
	c.retired.Add(context.Background(), 1)
}

// ObserveBulkReclaim records a completed bulk reclamation pass.
func (c *OTelMetricsCollector) ObserveBulkReclaim(reclaimed int, durationNanos int64) {
	ctx := context.Background()
	c.bulkReclaims.Add(ctx, 1)
	c.reclaimed.Add(ctx, int64(reclaimed))
	c.reclaimLatency.Record(ctx, durationNanos)
}

// ObserveSlotCount records the current size of a domain's slot pool.
func (c *OTelMetricsCollector) ObserveSlotCount(count int64) {
	c.slotCount.Record(context.Background(), count)
}

var _ anchorage.MetricsCollector = (*OTelMetricsCollector)(nil)
