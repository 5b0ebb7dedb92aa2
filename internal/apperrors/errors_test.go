package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestTransientStoreError(t *testing.T) {
	err := NewTransient("list price facts", context.DeadlineExceeded)
	wrapped := fmt.Errorf("materialize: %w", err)

	if !IsTransient(wrapped) {
		t.Fatalf("expected wrapped error to be transient")
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if got := err.Error(); got != "store unavailable: list price facts: context deadline exceeded" {
		t.Fatalf("unexpected message %q", got)
	}
	if IsTransient(errors.New("boom")) {
		t.Fatalf("plain error must not be transient")
	}
}

func TestMalformedInputError(t *testing.T) {
	err := Malformed("date", "2024/01/02", "expected YYYY-MM-DD")
	if !IsMalformed(fmt.Errorf("handler: %w", err)) {
		t.Fatalf("expected malformed")
	}
	if got := err.Error(); got != `invalid date "2024/01/02": expected YYYY-MM-DD` {
		t.Fatalf("unexpected message %q", got)
	}
	if IsMalformed(NewTransient("x", nil)) {
		t.Fatalf("transient must not be malformed")
	}
}
