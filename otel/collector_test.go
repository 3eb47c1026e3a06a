package otel

import (
	"context"
	"testing"
	"time"

	"github.com/agilira/anchorage"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestOTelMetricsCollector_Interface(t *testing.T) {
	var _ anchorage.MetricsCollector = (*OTelMetricsCollector)(nil)
}

func TestNewOTelMetricsCollector(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Errorf("Failed to shutdown provider: %v", err)
		}
	}()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("NewOTelMetricsCollector() returned nil")
	}
}

func TestNewOTelMetricsCollector_NilProvider(t *testing.T) {
	collector, err := NewOTelMetricsCollector(nil)
	if err == nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return error")
	}
	if collector != nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return nil collector")
	}
}

func TestOTelMetricsCollector_ObserveRetire(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.ObserveRetire()
	collector.ObserveRetire()
	collector.ObserveRetire()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "anchorage_retired_total" {
				continue
			}
			found = true
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected Sum[int64], got %T", m.Data)
			}
			if len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 3 {
				t.Errorf("expected 3 retires recorded, got %+v", sum.DataPoints)
			}
		}
	}
	if !found {
		t.Error("anchorage_retired_total metric not found")
	}
}

func TestOTelMetricsCollector_ObserveBulkReclaim(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.ObserveBulkReclaim(7, 1500)
	collector.ObserveBulkReclaim(3, 2500)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var foundPasses, foundReclaimed, foundLatency bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "anchorage_bulk_reclaims_total":
				foundPasses = true
				sum := m.Data.(metricdata.Sum[int64])
				if sum.DataPoints[0].Value != 2 {
					t.Errorf("expected 2 bulk reclaim passes, got %d", sum.DataPoints[0].Value)
				}
			case "anchorage_reclaimed_total":
				foundReclaimed = true
				sum := m.Data.(metricdata.Sum[int64])
				if sum.DataPoints[0].Value != 10 {
					t.Errorf("expected 10 reclaimed values, got %d", sum.DataPoints[0].Value)
				}
			case "anchorage_bulk_reclaim_duration_ns":
				foundLatency = true
				hist := m.Data.(metricdata.Histogram[int64])
				var total uint64
				for _, dp := range hist.DataPoints {
					total += dp.Count
				}
				if total != 2 {
					t.Errorf("expected 2 duration samples, got %d", total)
				}
			}
		}
	}
	if !foundPasses {
		t.Error("anchorage_bulk_reclaims_total metric not found")
	}
	if !foundReclaimed {
		t.Error("anchorage_reclaimed_total metric not found")
	}
	if !foundLatency {
		t.Error("anchorage_bulk_reclaim_duration_ns metric not found")
	}
}

func TestOTelMetricsCollector_ObserveSlotCount(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.ObserveSlotCount(4)
	collector.ObserveSlotCount(8)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "anchorage_slot_count" {
				found = true
				hist := m.Data.(metricdata.Histogram[int64])
				var total uint64
				for _, dp := range hist.DataPoints {
					total += dp.Count
				}
				if total != 2 {
					t.Errorf("expected 2 slot count samples, got %d", total)
				}
			}
		}
	}
	if !found {
		t.Error("anchorage_slot_count metric not found")
	}
}

func TestOTelMetricsCollector_Concurrent(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	const numGoroutines = 10
	const opsPerGoroutine = 100
	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			for j := 0; j < opsPerGoroutine; j++ {
				collector.ObserveRetire()
				collector.ObserveBulkReclaim(j%5, int64(100+id))
				collector.ObserveSlotCount(int64(id))
			}
			done <- true
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("test timeout - deadlock?")
		}
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("no metrics collected after concurrent operations")
	}
}

func TestOTelMetricsCollector_WithOptions(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider, WithMeterName("custom_anchorage"))
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("NewOTelMetricsCollector() returned nil")
	}

	collector.ObserveRetire()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("no scope metrics")
	}
	if rm.ScopeMetrics[0].Scope.Name != "custom_anchorage" {
		t.Errorf("expected scope name 'custom_anchorage', got '%s'", rm.ScopeMetrics[0].Scope.Name)
	}
}
