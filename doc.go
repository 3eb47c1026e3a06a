// Package anchorage implements hazard-pointer based safe memory reclamation
// (SMR) for lock-free data structures.
//
// A hazard box is an owning atomic pointer. Writers swap its payload and
// receive a retirement handle for the old value; readers publish the address
// they are about to dereference into a hazard slot before touching it, so a
// concurrent writer never frees memory a reader still holds.
//
// # Overview
//
//   - Lock-free, bounded-retry reader path.
//   - Writers are lock-free.
//   - Reclamation batches retired values and scans every hazard slot under a
//     single asymmetric fence pair, instead of locking per object.
//
// # Quick Start
//
//	import "github.com/agilira/anchorage"
//
//	box := anchorage.NewHazBox(42)
//	anchor := anchorage.NewAnchor()
//	defer anchor.Close()
//
//	v := anchorage.Moor(anchor, box) // *int, safe to read
//	_ = *v
//
//	old := box.Swap(43)
//	_ = old.Value() // still safe: not yet retired
//	old.Release()   // hands the old value to the domain for reclamation
//
// # Domains
//
// Every hazard box and anchor belongs to a domain: either the process-wide
// global domain (the default, obtained via [Global]) or a [ScopedDomain]
// bound to an explicit [ScopedDomain.Close] call. Retirement and protection
// are always same-domain operations; mooring a box from the wrong domain is
// a programmer error and panics.
//
// # Value-type contract
//
// Any value stored in a hazard box must be safe to share and mutate across
// goroutines through the synchronization this package provides, and its
// [Destroyer] implementation (if any) must not dereference data whose
// lifetime is shorter than the owning domain's lifetime. [ScopedDomain]
// exists precisely to carry such non-static-lifetime values safely: its
// closure time bounds every retirement's lifetime.
//
// # Reclamation tuning
//
//	err := anchorage.ApplyGlobalTuning(anchorage.DomainTuning{
//	    SyncPeriod:            2 * time.Second,
//	    RetiredCountThreshold: 1000,
//	    HPCountMultiplier:     2,
//	})
//
// These knobs can also be hot-reloaded from a config file at runtime via the
// TuningWatcher in hotreload.go, and observed through an OpenTelemetry
// collector in the sibling github.com/agilira/anchorage/otel module.
//
// # Non-goals
//
// No garbage collection of reference cycles, no epoch-based reclamation, no
// generic concurrent container (a hazard box holds exactly one value), no
// cross-domain retirement, and no guarantee on *when* a retired value is
// actually reclaimed — only that it is never reclaimed while protected.
//
// # Packages
//
//   - github.com/agilira/anchorage: core SMR implementation
//   - github.com/agilira/anchorage/otel: OpenTelemetry metrics collector (separate module)
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

// Version of the anchorage module.
const Version = "v0.1.0-dev"
