// main.go: configurable reader/writer stress harness for the global domain
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/anchorage"
	flashflags "github.com/agilira/flash-flags"
)

func main() {
	flags := flashflags.NewFlagSet("anchoragestress")
	readers := flags.Int("readers", 8, "number of concurrent reader goroutines")
	writers := flags.Int("writers", 2, "number of concurrent writer goroutines")
	duration := flags.Duration("duration", 3*time.Second, "how long to run the stress workload")
	retiredThreshold := flags.Int("retired-threshold", int(anchorage.DefaultDomainTuning().RetiredCountThreshold), "RetiredCountThreshold tuning override")
	hpMultiplier := flags.Int("hp-multiplier", int(anchorage.DefaultDomainTuning().HPCountMultiplier), "HPCountMultiplier tuning override")

	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("anchoragestress: %v", err)
	}

	tuning := anchorage.DefaultDomainTuning()
	tuning.RetiredCountThreshold = int64(*retiredThreshold)
	tuning.HPCountMultiplier = int64(*hpMultiplier)
	if err := anchorage.ApplyGlobalTuning(tuning); err != nil {
		log.Fatalf("anchoragestress: invalid tuning: %v", err)
	}

	fmt.Printf("anchoragestress: %d readers, %d writers, %s\n", *readers, *writers, *duration)

	box := anchorage.NewHazBox(0)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	var reads, writes int64
	var wg sync.WaitGroup

	for i := 0; i < *readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := anchorage.NewAnchor()
			defer a.Close()
			for ctx.Err() == nil {
				anchorage.Moor(a, box)
				atomic.AddInt64(&reads, 1)
			}
		}()
	}

	for i := 0; i < *writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			n := id
			for ctx.Err() == nil {
				n += *writers
				box.Swap(n).Release()
				atomic.AddInt64(&writes, 1)
			}
		}(i)
	}

	wg.Wait()

	elapsed := duration.String()
	fmt.Printf("anchoragestress: completed after %s\n", elapsed)
	fmt.Printf("  reads:  %d\n", atomic.LoadInt64(&reads))
	fmt.Printf("  writes: %d\n", atomic.LoadInt64(&writes))

	anchorage.EagerReclaim()
	fmt.Println("anchoragestress: final EagerReclaim issued")
}
