// slot.go: the hazard slot primitive
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync/atomic"
	"unsafe"
)

// slot is a single hazard pointer: a publishable address plus the flag that
// says whether some anchor currently owns it. Slots are created on demand by
// a domain's slot pool and, once created, live until the owning domain is
// destroyed — never returned to an allocator individually.
//
// State machine: Free (active=false, protected=nil) -> Idle (active=true,
// protected=nil) -> Guarding(p) (active=true, protected=p) -> Idle -> Free.
type slot struct {
	protected atomic.Pointer[byte]
	active    atomic.Bool
}

// protect publishes p as the address this slot is currently vouching for.
func (s *slot) protect(p unsafe.Pointer) {
	s.protected.Store((*byte)(p))
}

// ptr reads the address currently published by this slot, used by
// reclamation to build the guarded-address snapshot.
func (s *slot) ptr() unsafe.Pointer {
	return unsafe.Pointer(s.protected.Load())
}

// reset withdraws this slot's publication. Called on every failed verify and
// when an anchor stops guarding a value.
func (s *slot) reset() {
	s.protected.Store(nil)
}

// tryAcquire claims this slot for exclusive use by one anchor. Returns
// whether this call was the one that claimed it; concurrent callers race and
// at most one wins.
func (s *slot) tryAcquire() bool {
	return !s.active.Load() && s.active.CompareAndSwap(false, true)
}

// release gives this slot back to the pool. Precondition: protected has
// already been reset to nil by the caller.
func (s *slot) release() {
	s.active.Store(false)
}
