// errors.go: structured error handling for anchorage hazard-pointer operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for the fallible variants of domain and anchor constructors.
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package anchorage

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for anchorage operations.
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidConfig          errors.ErrorCode = "ANCHORAGE_INVALID_CONFIG"
	ErrCodeInvalidSyncPeriod      errors.ErrorCode = "ANCHORAGE_INVALID_SYNC_PERIOD"
	ErrCodeInvalidRetiredCount    errors.ErrorCode = "ANCHORAGE_INVALID_RETIRED_THRESHOLD"
	ErrCodeInvalidHPMultiplier    errors.ErrorCode = "ANCHORAGE_INVALID_HP_MULTIPLIER"
	ErrCodeInvalidBoundedCapacity errors.ErrorCode = "ANCHORAGE_INVALID_BOUNDED_CAPACITY"

	// Allocation errors (2xxx)
	ErrCodeAllocationFailed errors.ErrorCode = "ANCHORAGE_ALLOCATION_FAILED"
	ErrCodeSlotExhausted    errors.ErrorCode = "ANCHORAGE_SLOT_EXHAUSTED"

	// Programmer-bug errors (3xxx) — these are always panicked, never returned
	ErrCodeDomainMismatch errors.ErrorCode = "ANCHORAGE_DOMAIN_MISMATCH"
	ErrCodeClockAnomaly   errors.ErrorCode = "ANCHORAGE_CLOCK_ANOMALY"
	ErrCodeDoubleClose    errors.ErrorCode = "ANCHORAGE_DOUBLE_CLOSE"

	// Hot-reload errors (4xxx)
	ErrCodeTuningReloadFailed errors.ErrorCode = "ANCHORAGE_TUNING_RELOAD_FAILED"
)

// Common error messages.
const (
	msgInvalidSyncPeriod      = "invalid sync period: must be positive"
	msgInvalidRetiredCount    = "invalid retired-count threshold: must be positive"
	msgInvalidHPMultiplier    = "invalid hazard-slot count multiplier: must be positive"
	msgInvalidBoundedCapacity = "invalid bounded slot capacity: must be positive when bounded"
	msgAllocationFailed       = "failed to allocate storage for hazard value"
	msgSlotExhausted          = "no hazard slot available in bounded domain"
	msgDomainMismatch         = "anchor and hazard box belong to different domains"
	msgClockAnomaly           = "system clock is before the epoch or overflows 64-bit nanoseconds"
	msgDoubleClose            = "domain or anchor closed more than once"
	msgTuningReloadFailed     = "failed to apply reloaded domain tuning"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// NewErrInvalidSyncPeriod creates an error for a non-positive sync period.
func NewErrInvalidSyncPeriod(period interface{}) error {
	return errors.NewWithField(ErrCodeInvalidSyncPeriod, msgInvalidSyncPeriod, "provided_period", period)
}

// NewErrInvalidRetiredCount creates an error for a non-positive retired-count threshold.
func NewErrInvalidRetiredCount(threshold int64) error {
	return errors.NewWithField(ErrCodeInvalidRetiredCount, msgInvalidRetiredCount, "provided_threshold", threshold)
}

// NewErrInvalidHPMultiplier creates an error for a non-positive hazard-slot multiplier.
func NewErrInvalidHPMultiplier(multiplier int64) error {
	return errors.NewWithField(ErrCodeInvalidHPMultiplier, msgInvalidHPMultiplier, "provided_multiplier", multiplier)
}

// NewErrInvalidBoundedCapacity creates an error for a bounded domain with a non-positive capacity.
func NewErrInvalidBoundedCapacity(capacity int) error {
	return errors.NewWithField(ErrCodeInvalidBoundedCapacity, msgInvalidBoundedCapacity, "provided_capacity", capacity)
}

// =============================================================================
// ALLOCATION / EXHAUSTION ERRORS
// =============================================================================

// NewErrAllocationFailed wraps an allocator failure for a fallible constructor.
func NewErrAllocationFailed(cause error) error {
	return errors.Wrap(cause, ErrCodeAllocationFailed, msgAllocationFailed)
}

// NewErrSlotExhausted reports that a bounded domain has no free hazard slot.
func NewErrSlotExhausted(capacity int) error {
	return errors.NewWithField(ErrCodeSlotExhausted, msgSlotExhausted, "capacity", capacity).AsRetryable()
}

// =============================================================================
// PROGRAMMER-BUG ERRORS (always panicked)
// =============================================================================

// NewErrDomainMismatch builds the error passed to panic when an anchor moors
// a hazard box from a different domain.
func NewErrDomainMismatch() error {
	return errors.NewWithField(ErrCodeDomainMismatch, msgDomainMismatch, "check", "anchor.domain == box.domain").
		WithSeverity("critical")
}

// NewErrClockAnomaly builds the error passed to panic when the system clock
// reports a time before the epoch or beyond 64-bit nanosecond range.
func NewErrClockAnomaly(nowNanos int64) error {
	return errors.NewWithField(ErrCodeClockAnomaly, msgClockAnomaly, "observed_nanos", nowNanos).
		WithSeverity("critical")
}

// NewErrDoubleClose builds the error passed to panic when Close is called
// more than once on a scoped domain. Anchor.Close does not use it: repeat
// calls on an anchor are ignored.
func NewErrDoubleClose(what string) error {
	return errors.NewWithField(ErrCodeDoubleClose, msgDoubleClose, "target", what).WithSeverity("critical")
}

// =============================================================================
// HOT-RELOAD ERRORS
// =============================================================================

// NewErrTuningReloadFailed wraps a failure while applying reloaded tuning.
func NewErrTuningReloadFailed(cause error) error {
	return errors.Wrap(cause, ErrCodeTuningReloadFailed, msgTuningReloadFailed)
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsSlotExhausted checks if err is a slot-exhaustion error.
func IsSlotExhausted(err error) bool {
	return errors.HasCode(err, ErrCodeSlotExhausted)
}

// IsAllocationFailed checks if err is an allocation-failure error.
func IsAllocationFailed(err error) bool {
	return errors.HasCode(err, ErrCodeAllocationFailed)
}

// IsConfigError checks if err is one of the DomainTuning validation errors.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if !goerrors.As(err, &coder) {
		return false
	}
	switch coder.ErrorCode() {
	case ErrCodeInvalidConfig, ErrCodeInvalidSyncPeriod, ErrCodeInvalidRetiredCount,
		ErrCodeInvalidHPMultiplier, ErrCodeInvalidBoundedCapacity:
		return true
	default:
		return false
	}
}

// IsProgrammerError checks if err is one of the always-panicked invariant
// violations (domain mismatch, clock anomaly, double close).
func IsProgrammerError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if !goerrors.As(err, &coder) {
		return false
	}
	switch coder.ErrorCode() {
	case ErrCodeDomainMismatch, ErrCodeClockAnomaly, ErrCodeDoubleClose:
		return true
	default:
		return false
	}
}

// IsRetryable checks if the error can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorContext extracts the structured context from err, or nil if it
// carries none.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var anchErr *errors.Error
	if goerrors.As(err, &anchErr) {
		return anchErr.Context
	}
	return nil
}

// GetErrorCode extracts the error code from err, or "" if it carries none.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
