// domain.go: the Domain contract shared by the global and scoped domains
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import "unsafe"

// Domain owns a pool of hazard slots and a list of retired values awaiting
// reclamation. It is implemented only by [GlobalDomain] and [*ScopedDomain]:
// its methods are unexported so external packages cannot add a third kind,
// since an [Anchor] and a [HazBox] must agree on exactly which of these two
// domain shapes backs them.
//
// A Domain's identity is its own value: two Domain values are the "same
// domain" precisely when they compare equal with ==, which is wait-free and
// requires no virtual dispatch. GlobalDomain is a zero-size singleton type,
// so every GlobalDomain value is trivially equal to every other; ScopedDomain
// is always handled through a *ScopedDomain pointer, so equality is pointer
// identity.
type Domain interface {
	// Allocator returns the allocator this domain hands to every hazard box
	// constructed in it. A single Domain value must always return the same
	// Allocator, so storage allocated through it can later be deallocated
	// through it.
	Allocator() Allocator

	// acquire reserves a free hazard slot, growing the domain's slot pool if
	// none is free. Returns false only for a bounded domain that has reached
	// its capacity.
	acquire() (*slot, bool)

	// retire appends r to the domain's retired list and triggers whatever
	// bulk-reclamation policy the domain implements.
	retire(r retirable)

	// logger returns the diagnostics sink this domain's collaborators should
	// use. Never nil.
	logger() Logger
}

// retirable is a type-erased entry on a domain's retired list. It carries
// enough information to reclaim the value it represents without the domain
// ever needing to know T: the address, for slot-scanning comparisons, and a
// thunk that runs the value's Destroyer hook (if any) and returns its
// storage to the allocator that produced it.
type retirable struct {
	ptr     unsafe.Pointer
	reclaim func()
}

// sameDomain reports whether a and b identify the same domain. Equivalent to
// a == b; exists so call sites read as an explicit domain check rather than
// a bare comparison.
func sameDomain(a, b Domain) bool {
	return a == b
}
