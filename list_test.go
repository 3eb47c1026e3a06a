// list_test.go: unit tests for the intrusive lock-free stack
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync"
	"testing"
)

func TestList_PushFrontAndIterate(t *testing.T) {
	var l list[int]

	l.pushFront(1)
	l.pushFront(2)
	l.pushFront(3)

	if l.count.Load() != 3 {
		t.Fatalf("count = %d, want 3", l.count.Load())
	}

	var seen []int
	l.iterate(func(v *int) { seen = append(seen, *v) })

	// Most recently pushed is at the head.
	want := []int{3, 2, 1}
	if len(seen) != len(want) {
		t.Fatalf("iterate saw %d values, want %d", len(seen), len(want))
	}
	for i, v := range want {
		if seen[i] != v {
			t.Errorf("seen[%d] = %d, want %d", i, seen[i], v)
		}
	}
}

func TestList_PushListFront(t *testing.T) {
	var l list[int]
	l.pushFront(1)

	tail := &node[int]{value: 3}
	head := &node[int]{value: 2}
	head.next.Store(tail)

	l.pushListFront(head, tail, 2)

	if l.count.Load() != 3 {
		t.Fatalf("count = %d, want 3", l.count.Load())
	}

	var seen []int
	l.iterate(func(v *int) { seen = append(seen, *v) })
	want := []int{2, 3, 1}
	for i, v := range want {
		if seen[i] != v {
			t.Errorf("seen[%d] = %d, want %d", i, seen[i], v)
		}
	}
}

func TestList_ConcurrentPushFront(t *testing.T) {
	var l list[int]
	const numGoroutines = 50
	const perGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				l.pushFront(id*perGoroutine + i)
			}
		}(g)
	}
	wg.Wait()

	if got, want := l.count.Load(), int64(numGoroutines*perGoroutine); got != want {
		t.Errorf("count = %d, want %d", got, want)
	}

	seen := make(map[int]bool)
	l.iterate(func(v *int) { seen[*v] = true })
	if len(seen) != numGoroutines*perGoroutine {
		t.Errorf("iterate found %d distinct values, want %d", len(seen), numGoroutines*perGoroutine)
	}
}
