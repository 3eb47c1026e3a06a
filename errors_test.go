// errors_test.go: tests for structured error handling in anchorage
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package anchorage

import (
	"encoding/json"
	goerrors "errors"
	"testing"
	"time"

	"github.com/agilira/go-errors"
)

func assertError(t *testing.T, err error, expectedCode errors.ErrorCode, contextField string) {
	t.Helper()

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.HasCode(err, expectedCode) {
		t.Errorf("expected code %s, got %s", expectedCode, GetErrorCode(err))
	}
	if err.Error() == "" {
		t.Error("error message should not be empty")
	}
	if contextField != "" {
		ctx := GetErrorContext(err)
		if ctx == nil {
			t.Fatalf("expected context with field %s, got nil", contextField)
		}
		if _, ok := ctx[contextField]; !ok {
			t.Errorf("expected context field %s, not found in %+v", contextField, ctx)
		}
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode errors.ErrorCode
		contextField string
	}{
		{"InvalidSyncPeriod", NewErrInvalidSyncPeriod(-time.Second), ErrCodeInvalidSyncPeriod, "provided_period"},
		{"InvalidRetiredCount", NewErrInvalidRetiredCount(-1), ErrCodeInvalidRetiredCount, "provided_threshold"},
		{"InvalidHPMultiplier", NewErrInvalidHPMultiplier(-1), ErrCodeInvalidHPMultiplier, "provided_multiplier"},
		{"InvalidBoundedCapacity", NewErrInvalidBoundedCapacity(0), ErrCodeInvalidBoundedCapacity, "provided_capacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, tt.err, tt.expectedCode, tt.contextField)
			if !IsConfigError(tt.err) {
				t.Error("expected IsConfigError to be true")
			}
			if IsRetryable(tt.err) {
				t.Error("config errors should not be retryable")
			}
		})
	}
}

func TestAllocationAndExhaustionErrors(t *testing.T) {
	cause := goerrors.New("out of memory")
	allocErr := NewErrAllocationFailed(cause)
	assertError(t, allocErr, ErrCodeAllocationFailed, "")
	if !IsAllocationFailed(allocErr) {
		t.Error("expected IsAllocationFailed to be true")
	}
	if goerrors.Unwrap(allocErr) == nil {
		t.Error("expected wrapped cause")
	}
	if errors.RootCause(allocErr).Error() != cause.Error() {
		t.Errorf("expected root cause %q, got %q", cause.Error(), errors.RootCause(allocErr).Error())
	}

	exhaustedErr := NewErrSlotExhausted(8)
	assertError(t, exhaustedErr, ErrCodeSlotExhausted, "capacity")
	if !IsSlotExhausted(exhaustedErr) {
		t.Error("expected IsSlotExhausted to be true")
	}
	if !IsRetryable(exhaustedErr) {
		t.Error("slot exhaustion should be retryable: a concurrent release may free a slot")
	}
}

func TestProgrammerBugErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode errors.ErrorCode
	}{
		{"DomainMismatch", NewErrDomainMismatch(), ErrCodeDomainMismatch},
		{"ClockAnomaly", NewErrClockAnomaly(-1), ErrCodeClockAnomaly},
		{"DoubleClose", NewErrDoubleClose("anchor"), ErrCodeDoubleClose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, tt.err, tt.expectedCode, "")
			if !IsProgrammerError(tt.err) {
				t.Error("expected IsProgrammerError to be true")
			}

			var anchErr *errors.Error
			if goerrors.As(tt.err, &anchErr) {
				if anchErr.Severity != "critical" {
					t.Errorf("expected severity=critical, got %s", anchErr.Severity)
				}
			}
		})
	}
}

func TestTuningReloadError(t *testing.T) {
	cause := goerrors.New("malformed yaml")
	err := NewErrTuningReloadFailed(cause)
	assertError(t, err, ErrCodeTuningReloadFailed, "")
	if goerrors.Unwrap(err) == nil {
		t.Error("expected wrapped cause")
	}
}

func TestErrorJSONSerialization(t *testing.T) {
	err := NewErrSlotExhausted(16)

	var anchErr *errors.Error
	if !goerrors.As(err, &anchErr) {
		t.Fatal("expected *errors.Error type")
	}

	data, jsonErr := json.Marshal(anchErr)
	if jsonErr != nil {
		t.Fatalf("JSON marshal failed: %v", jsonErr)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("JSON unmarshal failed: %v", err)
	}

	if decoded["code"] != string(ErrCodeSlotExhausted) {
		t.Errorf("expected code %q in JSON, got %v", ErrCodeSlotExhausted, decoded["code"])
	}
	ctx, ok := decoded["context"].(map[string]interface{})
	if !ok {
		t.Fatal("expected context in JSON")
	}
	if ctx["capacity"] != float64(16) {
		t.Errorf("expected capacity=16 in context, got %v", ctx["capacity"])
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(nil) != "" {
		t.Error("expected empty string for nil error")
	}

	stdErr := goerrors.New("standard error")
	if GetErrorCode(stdErr) != "" {
		t.Error("expected empty string for standard error")
	}

	err := NewErrSlotExhausted(4)
	if GetErrorCode(err) != ErrCodeSlotExhausted {
		t.Errorf("expected code %s, got %s", ErrCodeSlotExhausted, GetErrorCode(err))
	}
}

func TestGetErrorContext_NilAndStandard(t *testing.T) {
	if GetErrorContext(nil) != nil {
		t.Error("expected nil context for nil error")
	}
	if GetErrorContext(goerrors.New("test")) != nil {
		t.Error("expected nil context for standard error")
	}
}

func BenchmarkErrorCreation(b *testing.B) {
	b.Run("Simple", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = NewErrDomainMismatch()
		}
	})

	b.Run("WithContext", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = NewErrSlotExhausted(8)
		}
	})

	b.Run("Wrapped", func(b *testing.B) {
		cause := goerrors.New("underlying error")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = NewErrAllocationFailed(cause)
		}
	})
}

func BenchmarkErrorChecking(b *testing.B) {
	err := NewErrSlotExhausted(8)

	b.Run("HasCode", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = errors.HasCode(err, ErrCodeSlotExhausted)
		}
	})

	b.Run("IsRetryable", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = IsRetryable(err)
		}
	})

	b.Run("GetErrorCode", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = GetErrorCode(err)
		}
	})

	b.Run("GetErrorContext", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = GetErrorContext(err)
		}
	})
}
