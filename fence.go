// fence.go: the asymmetric fence used by the anchor/domain protocol
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import "sync/atomic"

// fenceCounter is a dedicated, otherwise-meaningless atomic word. Go exposes
// no standalone memory-fence primitive, so a full fence is synthesized the
// idiomatic way: a CAS against a word nothing else touches forces the same
// sequentially-consistent ordering a bare fence would, without entangling
// unrelated state.
var fenceCounter atomic.Int64

// fenceLight is the reader-side half of the asymmetric fence pair: it must
// happen-before any subsequent operation performed by the caller. Today it is
// a full sequentially-consistent fence; the name reserves room for a cheaper
// platform-specific primitive (e.g. a compiler barrier paired with a
// process-wide membarrier on the heavy side) without touching call sites.
func fenceLight() {
	fullFence()
}

// fenceHeavy is the retirer-side half of the pair: any prior operation
// performed by the caller must happen-before it returns. Also a full
// sequentially-consistent fence today.
func fenceHeavy() {
	fullFence()
}

func fullFence() {
	for {
		v := fenceCounter.Load()
		if fenceCounter.CompareAndSwap(v, v+1) {
			return
		}
	}
}
