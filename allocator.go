// allocator.go: Allocator implementations for hazard box storage
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync"
	"unsafe"
)

// SystemAllocator is the default [Allocator]: it defers entirely to the Go
// runtime. Allocate returns size bytes backed by a fresh byte slice;
// Deallocate does nothing, since dropping the last reference is enough for
// the garbage collector to eventually reclaim it.
type SystemAllocator struct{}

// Allocate returns a pointer to size bytes of zeroed storage.
func (SystemAllocator) Allocate(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return unsafe.Pointer(new(byte)), nil
	}
	buf := make([]byte, size)
	return unsafe.Pointer(&buf[0]), nil
}

// Deallocate is a no-op: the garbage collector reclaims the storage once
// this was the last reference to it.
func (SystemAllocator) Deallocate(unsafe.Pointer, uintptr) {}

// poolAllocator is an [Allocator] backed by a sync.Pool of *T, for domains
// that retire and allocate hazard values of a single type T at high
// frequency and want to avoid the allocator churn of [SystemAllocator].
// Deallocate resets the pointed-to value to its zero value and returns it to
// the pool instead of discarding it.
type poolAllocator[T any] struct {
	pool *sync.Pool
}

// NewPoolAllocatorFor builds an [Allocator] whose storage is pooled *T
// values. Since the returned Allocator is untyped (it operates on
// unsafe.Pointer and a byte size, per the domain-wide Allocator contract),
// it is only safe to use it for allocations of size unsafe.Sizeof(T{}) — in
// practice, one domain dedicated to boxes of a single T.
func NewPoolAllocatorFor[T any]() Allocator {
	pool := &sync.Pool{New: func() interface{} { return new(T) }}
	return &poolAllocator[T]{pool: pool}
}

// Allocate returns a pooled *T if one is available, or a fresh one otherwise.
func (p *poolAllocator[T]) Allocate(uintptr) (unsafe.Pointer, error) {
	v := p.pool.Get().(*T)
	return unsafe.Pointer(v), nil
}

// Deallocate zeroes the pointed-to value and returns it to the pool for reuse.
func (p *poolAllocator[T]) Deallocate(ptr unsafe.Pointer, _ uintptr) {
	v := (*T)(ptr)
	var zero T
	*v = zero
	p.pool.Put(v)
}
