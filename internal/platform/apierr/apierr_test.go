package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessagePrecedence(t *testing.T) {
	if got := New(502, "sheet_private", fmt.Errorf("tab 0 is private")).Error(); got != "tab 0 is private" {
		t.Fatalf("got %q", got)
	}
	if got := New(502, "sheet_private", nil).Error(); got != "sheet_private" {
		t.Fatalf("got %q", got)
	}
	if got := New(502, "", nil).Error(); got != "api error (502)" {
		t.Fatalf("got %q", got)
	}
	if got := (&Error{}).Error(); got != "api error" {
		t.Fatalf("got %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	wrapped := New(500, "internal", inner)
	if !errors.Is(wrapped, inner) {
		t.Fatalf("Unwrap lost the cause")
	}
	var ae *Error
	if !errors.As(fmt.Errorf("outer: %w", wrapped), &ae) {
		t.Fatalf("errors.As failed")
	}
	if ae.Code != "internal" {
		t.Fatalf("code: %q", ae.Code)
	}
}
