// interfaces.go: public collaborator interfaces for anchorage
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import "unsafe"

// Allocator is the external collaborator every [Domain] exposes for
// allocating and reclaiming the storage behind its hazard boxes (spec §6):
// allocate(layout) -> ptr | error, deallocate(ptr, layout). "Layout" is
// approximated by a size in bytes, since within a process every Go value of
// a given type has a fixed, known size.
//
// Allocations must be symmetric: whatever Allocate produced, the same
// Allocator must Deallocate. A domain must return the same Allocator from
// every call to Domain.Allocator, so that any storage a HazBox allocates
// through it can later be deallocated through it, including by a different
// goroutine.
//
// Go is garbage-collected, so Deallocate does not need to literally free
// memory: it only needs to release the last strong reference (so the GC can
// collect it) and run any cleanup the caller requires. See [SystemAllocator]
// and [NewPoolAllocatorFor].
type Allocator interface {
	// Allocate returns size bytes of storage suitable for holding one value,
	// or an error if none is available (e.g. a bounded pool is exhausted).
	Allocate(size uintptr) (unsafe.Pointer, error)

	// Deallocate releases storage previously returned by Allocate for the
	// same size. Must not be called twice for the same pointer.
	Deallocate(ptr unsafe.Pointer, size uintptr)
}

// Destroyer is implemented by hazard values that need explicit cleanup when
// retired (the Go analogue of a non-trivial destructor in retire.rs). If a
// retired value implements Destroyer, Destroy is invoked before the
// allocator's Deallocate.
type Destroyer interface {
	Destroy()
}

// Logger defines a minimal logging interface with zero overhead when unused.
// Implementations should be allocation-free and safe for concurrent use.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a Logger that does nothing. Used as the default so call
// sites never need a nil check.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider supplies the current wall-clock time in nanoseconds since the
// epoch, used by the global domain's timed reclamation debounce. Injectable
// so tests can control the clock and production can use a cached source.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch. Must be very
	// fast and allocation-free: it is called on the retire() hot path.
	Now() int64
}

// MetricsCollector receives domain reclamation diagnostics. Implementations
// must be safe for concurrent use and fast: they are called from the
// retire() and bulk-reclaim hot paths. The default is a no-op so metrics
// collection never costs anything unless explicitly configured.
type MetricsCollector interface {
	// ObserveRetire is called once per value retired into the global domain.
	ObserveRetire()

	// ObserveBulkReclaim is called once per global-domain bulk reclaim pass
	// that found retired entries, with the number of values it actually
	// reclaimed and its duration in nanoseconds. A pass that finds the
	// retired list empty reports nothing.
	ObserveBulkReclaim(reclaimed int, durationNanos int64)

	// ObserveSlotCount reports the current size of the global domain's slot
	// pool, after each reported bulk reclaim pass.
	ObserveSlotCount(count int64)
}

// NoOpMetricsCollector is a MetricsCollector that does nothing.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) ObserveRetire()                                {}
func (NoOpMetricsCollector) ObserveBulkReclaim(reclaimed int, nanos int64) {}
func (NoOpMetricsCollector) ObserveSlotCount(count int64)                  {}
