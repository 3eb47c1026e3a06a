// fence_test.go: sanity tests for the asymmetric fence primitives
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"sync"
	"testing"
)

func TestFence_DoNotPanic(t *testing.T) {
	fenceLight()
	fenceHeavy()
}

func TestFence_ConcurrentCallsAreSafe(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				fenceLight()
			} else {
				fenceHeavy()
			}
		}(i)
	}
	wg.Wait()
}
