// config.go: domain reclamation tuning for anchorage
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package anchorage

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Default tuning constants, matching the literal thresholds of the
// underlying algorithm: a 2-second wall-clock debounce on unconditional
// reclamation, and a 1000-retired / 2x-slot-count threshold for
// opportunistic reclamation.
const (
	syncPeriodDefault         = 2 * time.Second
	retiredCountThresholdDflt = 1000
	hpCountMultiplierDflt     = 2
)

// DomainTuning holds the parameters that govern when a [GlobalDomain]
// performs threshold- and time-driven bulk reclamation.
type DomainTuning struct {
	// SyncPeriod is the minimum wall-clock interval between two
	// unconditional, transitive bulk reclamations. Must be > 0.
	// Default: syncPeriodDefault (2s).
	SyncPeriod time.Duration

	// RetiredCountThreshold is the minimum number of retired entries before
	// threshold-triggered reclamation is even considered. Must be > 0.
	// Default: retiredCountThresholdDflt (1000).
	RetiredCountThreshold int64

	// HPCountMultiplier relates the retired count to the current hazard
	// slot count: threshold reclamation additionally requires
	// retired >= HPCountMultiplier*slots. Must be > 0.
	// Default: hpCountMultiplierDflt (2).
	HPCountMultiplier int64

	// Logger receives the global domain's diagnostics: the warning for a
	// Retirement finalized without Release, and rejected hot-reloaded
	// tuning. If nil, NoOpLogger is used.
	Logger Logger

	// TimeProvider supplies nanosecond wall-clock time for the timed
	// reclamation debounce. If nil, a go-timecache-backed provider is used.
	TimeProvider TimeProvider

	// MetricsCollector receives reclamation diagnostics. If nil,
	// NoOpMetricsCollector is used (zero overhead).
	MetricsCollector MetricsCollector
}

// Validate normalizes a DomainTuning in place, applying defaults for zero
// fields and returning an error for negative ones that cannot be defaulted
// away safely.
func (t *DomainTuning) Validate() error {
	if t.SyncPeriod < 0 {
		return NewErrInvalidSyncPeriod(t.SyncPeriod)
	}
	if t.SyncPeriod == 0 {
		t.SyncPeriod = syncPeriodDefault
	}

	if t.RetiredCountThreshold < 0 {
		return NewErrInvalidRetiredCount(t.RetiredCountThreshold)
	}
	if t.RetiredCountThreshold == 0 {
		t.RetiredCountThreshold = retiredCountThresholdDflt
	}

	if t.HPCountMultiplier < 0 {
		return NewErrInvalidHPMultiplier(t.HPCountMultiplier)
	}
	if t.HPCountMultiplier == 0 {
		t.HPCountMultiplier = hpCountMultiplierDflt
	}

	if t.Logger == nil {
		t.Logger = NoOpLogger{}
	}
	if t.TimeProvider == nil {
		t.TimeProvider = &systemTimeProvider{}
	}
	if t.MetricsCollector == nil {
		t.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultDomainTuning returns tuning matching the algorithm's original
// constants, with every collaborator defaulted to its no-op implementation.
func DefaultDomainTuning() DomainTuning {
	return DomainTuning{
		SyncPeriod:            syncPeriodDefault,
		RetiredCountThreshold: retiredCountThresholdDflt,
		HPCountMultiplier:     hpCountMultiplierDflt,
		Logger:                NoOpLogger{},
		TimeProvider:          &systemTimeProvider{},
		MetricsCollector:      NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default TimeProvider, backed by go-timecache.
// This provides ~100x faster time access than time.Now() with zero
// allocations — exactly the property the reclamation hot path needs.
type systemTimeProvider struct{}

// Now returns the cached wall-clock reading in nanoseconds since the epoch.
// Panics via [NewErrClockAnomaly] if the clock reports a time at or before
// the epoch, or one that has wrapped a 64-bit nanosecond count — spec.md §7
// classifies both as a system clock anomaly the timed reclamation path must
// abort on rather than silently misbehave against.
func (t *systemTimeProvider) Now() int64 {
	now := timecache.CachedTimeNano()
	if now <= 0 {
		panic(NewErrClockAnomaly(now))
	}
	return now
}
