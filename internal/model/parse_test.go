package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("123.456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("123.456")) {
		t.Fatalf("amount = %s, want 123.456", got)
	}

	got, err = ParseAmount("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("empty amount = %s, want 0", got)
	}

	if _, err := ParseAmount("abc"); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
}

func TestParseInt32(t *testing.T) {
	got, err := ParseInt32("-887220")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -887220 {
		t.Fatalf("value = %d, want -887220", got)
	}

	if _, err := ParseInt32(""); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := ParseInt32("99999999999"); err == nil {
		t.Fatalf("expected error for overflow")
	}
}
