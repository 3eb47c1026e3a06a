// hazbox.go: the owning, swappable hazard pointer
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync/atomic"
	"unsafe"
)

// HazBox is an atomically swappable pointer to a value of type T, readable
// by any number of concurrent [Anchor]s without locking and without the
// reader ever observing a value mid-replacement. Swapping out a value never
// frees it immediately: the old value is handed to the domain's reclaimer
// through the [Retirement] Swap returns, and is only actually reclaimed once
// no anchor can still be holding it.
type HazBox[T any] struct {
	ptr    atomic.Pointer[T]
	domain Domain
}

// NewHazBox allocates a HazBox in the global domain.
func NewHazBox[T any](value T) *HazBox[T] {
	b, err := TryNewHazBoxIn(value, Global())
	if err != nil {
		panic(err)
	}
	return b
}

// TryNewHazBox allocates a HazBox in the global domain, returning an error
// instead of panicking if the allocator fails.
func TryNewHazBox[T any](value T) (*HazBox[T], error) {
	return TryNewHazBoxIn(value, Global())
}

// NewHazBoxIn allocates a HazBox in domain. Panics if the domain's allocator
// fails; use [TryNewHazBoxIn] to handle that case explicitly.
func NewHazBoxIn[T any](value T, domain Domain) *HazBox[T] {
	b, err := TryNewHazBoxIn(value, domain)
	if err != nil {
		panic(err)
	}
	return b
}

// TryNewHazBoxIn allocates a HazBox in domain, returning an error if the
// domain's allocator cannot satisfy the request (e.g. a bounded pool).
func TryNewHazBoxIn[T any](value T, domain Domain) (*HazBox[T], error) {
	p, err := allocateValue(domain.Allocator(), value)
	if err != nil {
		return nil, NewErrAllocationFailed(err)
	}
	b := &HazBox[T]{domain: domain}
	b.ptr.Store(p)
	return b, nil
}

// Swap installs value as the box's current value and returns a [Retirement]
// holding the value it replaced. The caller must call Retirement.Release;
// the domain then defers reclaiming the old value until no anchor still
// guards it, so Release may be called while anchors are reading it.
func (b *HazBox[T]) Swap(value T) *Retirement[T] {
	p, err := allocateValue(b.domain.Allocator(), value)
	if err != nil {
		panic(NewErrAllocationFailed(err))
	}
	old := b.ptr.Swap(p)
	return newRetirement(old, b.domain)
}

// Set installs value as the box's current value and immediately releases
// the value it replaced for reclamation. Equivalent to calling Swap and
// releasing the result right away, for callers that never need to inspect
// the outgoing value.
func (b *HazBox[T]) Set(value T) {
	b.Swap(value).Release()
}

// Close deallocates the box's current value directly, bypassing the
// retirement path. Only safe once the caller can prove no anchor still
// holds a reference into this box — typically because the box itself is
// about to go out of scope.
func (b *HazBox[T]) Close() {
	p := b.ptr.Swap(nil)
	if p == nil {
		return
	}
	destroyAndDeallocate(b.domain.Allocator(), p)
}

// allocateValue requests size-of-T storage from alloc and copies value into it.
func allocateValue[T any](alloc Allocator, value T) (*T, error) {
	raw, err := alloc.Allocate(unsafe.Sizeof(value))
	if err != nil {
		return nil, err
	}
	p := (*T)(raw)
	*p = value
	return p, nil
}
