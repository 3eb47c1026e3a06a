// scoped.go: a domain bound to a caller-chosen lifetime and allocator
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync/atomic"
	"unsafe"
)

// ScopedDomain is a [Domain] whose lifetime and allocator the caller
// controls, instead of sharing the process-wide [GlobalDomain]. Useful for
// a subsystem that wants its hazard pointers torn down deterministically
// with the subsystem itself, or that wants a pooled allocator dedicated to
// one value type.
//
// Two ScopedDomain values are the same domain exactly when they are the same
// *ScopedDomain pointer; it is always handled by pointer, never copied.
type ScopedDomain struct {
	slots    list[slot]
	retired  list[retirable]
	alloc    Allocator
	log      Logger
	bounded  bool
	capacity int
	closed   atomic.Bool
}

// NewScopedDomain returns an unbounded scoped domain that allocates hazard
// values through alloc.
func NewScopedDomain(alloc Allocator) *ScopedDomain {
	return &ScopedDomain{alloc: alloc, log: NoOpLogger{}}
}

// NewBoundedScopedDomain returns a scoped domain that refuses to grow its
// slot pool past capacity: once every slot is in use, acquiring a new anchor
// fails with [ErrCodeSlotExhausted] instead of allocating another slot.
func NewBoundedScopedDomain(alloc Allocator, capacity int) (*ScopedDomain, error) {
	if capacity <= 0 {
		return nil, NewErrInvalidBoundedCapacity(capacity)
	}
	return &ScopedDomain{alloc: alloc, log: NoOpLogger{}, bounded: true, capacity: capacity}, nil
}

// WithLogger sets the diagnostics sink used for finalizer safety-net
// warnings. Returns d for chaining after construction.
func (d *ScopedDomain) WithLogger(l Logger) *ScopedDomain {
	if l != nil {
		d.log = l
	}
	return d
}

// Allocator returns the allocator this domain was built with.
func (d *ScopedDomain) Allocator() Allocator {
	return d.alloc
}

func (d *ScopedDomain) logger() Logger {
	return d.log
}

func (d *ScopedDomain) acquire() (*slot, bool) {
	var found *slot
	d.slots.iterate(func(s *slot) {
		if found == nil && s.tryAcquire() {
			found = s
		}
	})
	if found != nil {
		return found, true
	}
	if d.bounded && d.slots.count.Load() >= int64(d.capacity) {
		return nil, false
	}
	n := d.slots.pushFront(slot{})
	s := &n.value
	s.tryAcquire()
	return s, true
}

func (d *ScopedDomain) retire(r retirable) {
	d.retired.pushFront(r)
}

// Reclaim runs one bulk-reclamation pass: every retired entry whose address
// is not currently guarded by an active slot is reclaimed; the rest survive
// for a later pass. Unlike GlobalDomain, a ScopedDomain applies no
// threshold or time policy on its own — callers that want periodic
// reclamation must call this themselves.
func (d *ScopedDomain) Reclaim() {
	stolen := d.retired.head.Swap(nil)
	if stolen == nil {
		return
	}
	d.retired.count.Store(0)

	fenceHeavy()

	guarded := make(map[unsafe.Pointer]struct{})
	d.slots.iterate(func(s *slot) {
		if s.active.Load() {
			if p := s.ptr(); p != nil {
				guarded[p] = struct{}{}
			}
		}
	})

	var survivorHead, survivorTail *node[retirable]
	var survivorCount int64

	for n := stolen; n != nil; {
		next := n.next.Load()
		if _, live := guarded[n.value.ptr]; live {
			n.next.Store(nil)
			if survivorHead == nil {
				survivorHead = n
			} else {
				survivorTail.next.Store(n)
			}
			survivorTail = n
			survivorCount++
		} else {
			n.value.reclaim()
		}
		n = next
	}

	if survivorHead != nil {
		d.retired.pushListFront(survivorHead, survivorTail, survivorCount)
	}
}

// Close tears the domain down: every retired entry is reclaimed
// unconditionally, regardless of whether a slot still guards its address,
// since no anchor may outlive the domain that issued it. Panics if called
// more than once.
func (d *ScopedDomain) Close() {
	if !d.closed.CompareAndSwap(false, true) {
		panic(NewErrDoubleClose("scoped domain"))
	}

	n := d.retired.head.Swap(nil)
	for n != nil {
		next := n.next.Load()
		n.value.reclaim()
		n = next
	}
	d.retired.count.Store(0)
}
