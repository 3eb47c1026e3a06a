// Package otel provides OpenTelemetry integration for anchorage domain
// reclamation metrics.
//
// # Overview
//
// This package implements the anchorage.MetricsCollector interface using
// OpenTelemetry, so retire/reclaim activity can be exported to any
// OTEL-compatible backend (Prometheus, Jaeger, DataDog, Grafana).
//
// The package is a separate module to keep the anchorage core lightweight.
// Applications that don't need metrics don't pay for the OTEL dependency
// tree.
//
// # Quick Start
//
//	import (
//	    "github.com/agilira/anchorage"
//	    anchorageotel "github.com/agilira/anchorage/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, err := prometheus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := anchorageotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tuning := anchorage.DefaultDomainTuning()
//	tuning.MetricsCollector = collector
//	if err := anchorage.ApplyGlobalTuning(tuning); err != nil {
//	    log.Fatal(err)
//	}
//
// From this point, every Retire and bulk reclaim against the global domain
// reports through the configured OTEL instruments.
//
// # Meter Name
//
// Only the global domain reports to a MetricsCollector; scoped domains report
// no metrics. The instruments are registered under the meter name
// "github.com/agilira/anchorage" unless another one is given:
//
//	requestCollector, _ := anchorageotel.NewOTelMetricsCollector(
//	    provider,
//	    anchorageotel.WithMeterName("anchorage.request-scope"),
//	)
package otel
