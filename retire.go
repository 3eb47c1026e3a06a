// retire.go: the retirement handle returned when a hazard box's value is swapped out
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"
)

// Retirement is returned by [HazBox.Swap]: it holds the value the box just
// replaced. The caller owns exactly one decision: read it a final time
// through [Retirement.Value] if needed, then call [Retirement.Release] to
// hand it to the domain's reclaimer once no reader can still be looking at
// it.
//
// Go has no deterministic destructor, so unlike the Rust type this is
// modeled on, a Retirement that is simply dropped on the floor does not
// retire itself synchronously. A finalizer is attached as a safety net: if
// the garbage collector reclaims a Retirement that was never released, it
// logs a warning and releases it late rather than leaking the value forever.
// Call Release explicitly; do not rely on the finalizer.
type Retirement[T any] struct {
	value    *T
	domain   Domain
	released atomic.Bool
}

func newRetirement[T any](value *T, domain Domain) *Retirement[T] {
	r := &Retirement[T]{value: value, domain: domain}
	runtime.SetFinalizer(r, finalizeRetirement[T])
	return r
}

func finalizeRetirement[T any](r *Retirement[T]) {
	if r.released.Load() {
		return
	}
	r.domain.logger().Warn("anchorage: retirement finalized without Release", "type", typeName[T]())
	r.Release()
}

// Value returns the retired value. Valid to call until Release; the pointer
// must not be retained past that call.
func (r *Retirement[T]) Value() *T {
	return r.value
}

// Release hands the retired value to its domain's reclaimer. Safe to call
// more than once; only the first call has effect.
func (r *Retirement[T]) Release() {
	if !r.released.CompareAndSwap(false, true) {
		return
	}
	runtime.SetFinalizer(r, nil)

	alloc := r.domain.Allocator()
	value := r.value
	r.domain.retire(retirable{
		ptr: unsafe.Pointer(value),
		reclaim: func() {
			destroyAndDeallocate(alloc, value)
		},
	})
}

// destroyAndDeallocate runs the Destroyer hook, if any, then returns the
// value's storage to the allocator that produced it.
func destroyAndDeallocate[T any](alloc Allocator, p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	alloc.Deallocate(unsafe.Pointer(p), unsafe.Sizeof(*p))
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
