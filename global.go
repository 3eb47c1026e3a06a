// global.go: the process-wide hazard-pointer domain
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync/atomic"
	"unsafe"
)

// GlobalDomain is the default, process-wide [Domain]. It is a zero-size
// singleton: every GlobalDomain value compares equal to every other, and its
// state lives in package-level variables rather than on the value itself, so
// it can be passed around and stored by value at no cost.
//
// Call [Global] to get one. Reclamation is driven by [DomainTuning], applied
// with [ApplyGlobalTuning] or kept hot-reloadable with a [TuningWatcher].
type GlobalDomain struct{}

var (
	globalSlots    list[slot]
	globalRetired  list[retirable]
	globalTuning   atomic.Pointer[DomainTuning]
	globalLastSync atomic.Int64
	// globalBulkReclaims is a diagnostic count of in-flight bulk-reclaim
	// passes (spec.md §4.4.1 step 1/3). It never gates concurrent passes:
	// reclamation is lock-free and may run concurrently with itself.
	globalBulkReclaims atomic.Int64
)

func init() {
	t := DefaultDomainTuning()
	globalTuning.Store(&t)
}

// Global returns the process-wide domain.
func Global() GlobalDomain {
	return GlobalDomain{}
}

// ApplyGlobalTuning validates t and, if valid, installs it as the tuning the
// global domain uses from then on. Safe to call concurrently with retires
// and reclamation.
func ApplyGlobalTuning(t DomainTuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	globalTuning.Store(&t)
	return nil
}

func loadGlobalTuning() *DomainTuning {
	return globalTuning.Load()
}

// Allocator returns the allocator every hazard box in the global domain
// allocates its storage through: the ordinary Go heap.
func (GlobalDomain) Allocator() Allocator {
	return SystemAllocator{}
}

func (GlobalDomain) logger() Logger {
	return loadGlobalTuning().Logger
}

func (GlobalDomain) acquire() (*slot, bool) {
	var found *slot
	globalSlots.iterate(func(s *slot) {
		if found == nil && s.tryAcquire() {
			found = s
		}
	})
	if found != nil {
		return found, true
	}
	n := globalSlots.pushFront(slot{})
	s := &n.value
	s.tryAcquire()
	return s, true
}

// retire appends r to the global retired list, then applies the
// time-driven and threshold-driven reclamation policy: the timed path is
// checked first and, if it fires, reclaims unconditionally; only if it does
// not fire is the threshold path considered (spec.md §4.4.1, grounded on
// original_source/src/domain/global.rs's check_cleanup_and_reclaim, which
// returns early from try_timed_cleanup before ever consulting the
// threshold).
func (GlobalDomain) retire(r retirable) {
	globalRetired.pushFront(r)

	tuning := loadGlobalTuning()
	tuning.MetricsCollector.ObserveRetire()

	now := tuning.TimeProvider.Now()
	last := globalLastSync.Load()
	if now-last >= tuning.SyncPeriod.Nanoseconds() {
		if globalLastSync.CompareAndSwap(last, now) {
			globalBulkReclaim(true)
			return
		}
	}

	retiredCount := globalRetired.count.Load()
	slotCount := globalSlots.count.Load()

	if retiredCount >= tuning.RetiredCountThreshold && retiredCount >= tuning.HPCountMultiplier*slotCount {
		globalBulkReclaim(false)
	}
}

// EagerReclaim forces an immediate bulk reclaim attempt regardless of the
// configured thresholds. Entries still guarded by a live anchor survive it
// exactly as they would survive any other bulk reclaim; it is always safe to
// call, it just may find nothing to do.
func EagerReclaim() {
	globalBulkReclaim(true)
}

// globalBulkReclaim steals the current retired list, fences, snapshots every
// address still guarded by an active slot, reclaims every retired entry not
// in that snapshot, and re-links survivors back onto the retired list.
// Reclamation is lock-free but may run concurrently with itself (spec.md
// §5); globalBulkReclaims only counts in-flight passes for diagnostics, it
// never gates them.
func globalBulkReclaim(transitive bool) {
	globalBulkReclaims.Add(1)
	defer globalBulkReclaims.Add(-1)

	tuning := loadGlobalTuning()
	start := tuning.TimeProvider.Now()

	stolen := globalRetired.head.Swap(nil)
	if stolen == nil {
		return
	}
	globalRetired.count.Store(0)

	fenceHeavy()

	guarded := make(map[unsafe.Pointer]struct{})
	globalSlots.iterate(func(s *slot) {
		if s.active.Load() {
			if p := s.ptr(); p != nil {
				guarded[p] = struct{}{}
			}
		}
	})

	var survivorHead, survivorTail *node[retirable]
	var survivorCount int64
	reclaimed := 0

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
			reclaimed++
		}
		n = next
	}

	if survivorHead != nil {
		globalRetired.pushListFront(survivorHead, survivorTail, survivorCount)
	}

	if transitive {
		globalLastSync.Store(tuning.TimeProvider.Now())
	}

	tuning.MetricsCollector.ObserveBulkReclaim(reclaimed, tuning.TimeProvider.Now()-start)
	tuning.MetricsCollector.ObserveSlotCount(globalSlots.count.Load())
}
