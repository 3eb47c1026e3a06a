// hotreload.go: dynamic reclamation tuning with Argus integration
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// TuningWatcher watches a configuration file and reapplies [DomainTuning] to
// the global domain whenever it changes, without restarting the process or
// dropping any in-flight retire.
type TuningWatcher struct {
	watcher *argus.Watcher
	mu      sync.RWMutex
	tuning  DomainTuning

	// OnReload is called after tuning is successfully reloaded and applied.
	// Optional; must be fast and non-blocking.
	OnReload func(old, new DomainTuning)
}

// TuningWatcherOptions configures a TuningWatcher.
type TuningWatcherOptions struct {
	// ConfigPath is the path to the configuration file to watch. Supports
	// JSON, YAML, TOML, HCL, INI, and Properties formats (anything Argus's
	// universal loader recognizes).
	ConfigPath string

	// PollInterval is how often to check for file changes. Default: 1s.
	// Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after tuning is successfully reloaded.
	OnReload func(old, new DomainTuning)
}

// NewTuningWatcher starts watching opts.ConfigPath and applies reloaded
// tuning to the global domain via [ApplyGlobalTuning] as changes land.
//
// Supported configuration keys, under a top-level "reclamation" section:
//
//	reclamation:
//	  sync_period: "2s"
//	  retired_count_threshold: 1000
//	  hp_count_multiplier: 2
func NewTuningWatcher(opts TuningWatcherOptions) (*TuningWatcher, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	tw := &TuningWatcher{
		OnReload: opts.OnReload,
		tuning:   DefaultDomainTuning(),
	}

	argusConfig := argus.Config{PollInterval: opts.PollInterval}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, tw.handleChange, argusConfig)
	if err != nil {
		return nil, err
	}
	tw.watcher = watcher

	return tw, nil
}

// Start begins watching the configuration file for changes.
func (tw *TuningWatcher) Start() error {
	if tw.watcher.IsRunning() {
		return nil
	}
	return tw.watcher.Start()
}

// Stop stops watching the configuration file.
func (tw *TuningWatcher) Stop() error {
	return tw.watcher.Stop()
}

// Tuning returns the most recently applied tuning (thread-safe).
func (tw *TuningWatcher) Tuning() DomainTuning {
	tw.mu.RLock()
	defer tw.mu.RUnlock()
	return tw.tuning
}

func (tw *TuningWatcher) handleChange(data map[string]interface{}) {
	old := tw.Tuning()
	next := tw.parseTuning(data)

	if err := ApplyGlobalTuning(next); err != nil {
		next.Logger.Error("anchorage: reloaded tuning rejected", "error", NewErrTuningReloadFailed(err))
		return
	}

	tw.mu.Lock()
	tw.tuning = next
	tw.mu.Unlock()

	if tw.OnReload != nil {
		tw.OnReload(old, next)
	}
}

func (tw *TuningWatcher) parseTuning(data map[string]interface{}) DomainTuning {
	next := tw.Tuning()

	section, ok := data["reclamation"].(map[string]interface{})
	if !ok {
		if _, hasPeriod := data["sync_period"]; hasPeriod {
			section = data
		} else {
			return next
		}
	}

	if period, ok := parseDuration(section["sync_period"]); ok {
		next.SyncPeriod = period
	}
	if threshold, ok := parsePositiveInt(section["retired_count_threshold"]); ok {
		next.RetiredCountThreshold = int64(threshold)
	}
	if multiplier, ok := parsePositiveInt(section["hp_count_multiplier"]); ok {
		next.HPCountMultiplier = int64(multiplier)
	}

	return next
}

// parsePositiveInt extracts a positive integer from an interface{} value.
// Supports both int and float64, since JSON/YAML decoders disagree on which
// they produce for a bare number.
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

// parseDuration extracts a time.Duration from a string value.
func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil {
			return d, true
		}
	}
	return 0, false
}
