// anchor.go: the reader-side handle that keeps a moored value alive
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync/atomic"
	"unsafe"
)

// Anchor is a reader's claim on one hazard slot in a domain. While a value
// is moored through it (see [Moor]), the domain's reclaimer will never
// reclaim that value, no matter how many times the [HazBox] it came from is
// swapped concurrently. An Anchor is single-goroutine: moor one value at a
// time through it, reset or close it when done.
type Anchor struct {
	domain Domain
	slot   *slot
	closed atomic.Bool
}

// NewAnchor claims a slot in the global domain. Panics if the global domain
// cannot provide one, which in practice never happens: the global domain
// grows its slot pool without bound.
func NewAnchor() *Anchor {
	a, err := TryNewAnchor(Global())
	if err != nil {
		panic(err)
	}
	return a
}

// TryNewAnchor claims a slot in domain, returning [ErrCodeSlotExhausted] if
// domain is bounded and already at capacity.
func TryNewAnchor(domain Domain) (*Anchor, error) {
	s, ok := domain.acquire()
	if !ok {
		return nil, NewErrSlotExhausted(-1)
	}
	return &Anchor{domain: domain, slot: s}, nil
}

// NewAnchorIn claims a slot in domain, panicking instead of returning an
// error on exhaustion. Use [TryNewAnchor] for a bounded domain that may
// legitimately run out of slots.
func NewAnchorIn(domain Domain) *Anchor {
	a, err := TryNewAnchor(domain)
	if err != nil {
		panic(err)
	}
	return a
}

// Reset withdraws this anchor's protection without releasing the slot back
// to the domain, so the anchor is ready to moor a new value.
func (a *Anchor) Reset() {
	a.slot.reset()
}

// Close withdraws this anchor's protection and returns its slot to the
// domain's pool for reuse. Safe to call more than once; only the first call
// has effect.
func (a *Anchor) Close() {
	if !a.closed.CompareAndSwap(false, true) {
		return
	}
	a.slot.reset()
	a.slot.release()
}

// Moor publishes the value currently held by box through a, protecting it
// against reclamation until the anchor is reset, closed, or moors a
// different box, and returns it. Panics with [ErrCodeDomainMismatch] if a
// and box belong to different domains: an anchor can only protect values
// whose domain agrees to watch its slot during reclamation.
func Moor[T any](a *Anchor, box *HazBox[T]) *T {
	if !sameDomain(a.domain, box.domain) {
		panic(NewErrDomainMismatch())
	}
	return moorLoop(a, box)
}

// TryMoor is an optimization over [Moor] for callers that already observed
// box's value as expected: if the box still holds expected and a's slot
// still protects it, TryMoor returns immediately without a fence. Otherwise
// it falls back to the full publish-verify loop. The returned bool reports
// whether the box's value had changed since expected was observed.
func TryMoor[T any](a *Anchor, box *HazBox[T], expected unsafe.Pointer) (*T, unsafe.Pointer, bool) {
	if !sameDomain(a.domain, box.domain) {
		panic(NewErrDomainMismatch())
	}

	current := box.ptr.Load()
	if unsafe.Pointer(current) == expected && a.slot.ptr() == expected {
		return current, expected, false
	}

	p := moorLoop(a, box)
	return p, unsafe.Pointer(p), true
}

// moorLoop implements the hazard-pointer publish/verify protocol: publish a
// candidate address, fence, then confirm the box has not moved on to a new
// value in the meantime. A concurrent Swap that races this loop simply
// causes one more iteration; the loop always terminates because each retry
// observes a value the writer has already fully installed.
func moorLoop[T any](a *Anchor, box *HazBox[T]) *T {
	for {
		p := box.ptr.Load()
		a.slot.protect(unsafe.Pointer(p))
		fenceLight()

		if box.ptr.Load() == p {
			return p
		}
		a.slot.reset()
	}
}
