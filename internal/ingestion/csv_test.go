package ingestion

import (
	"reflect"
	"testing"
)

func TestParseLine_SplitsPlainFields(t *testing.T) {
	got := ParseLine("2025-01-06,Monday,101,John Smith")
	want := []string{"2025-01-06", "Monday", "101", "John Smith"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseLine_QuotedFieldKeepsComma(t *testing.T) {
	got := ParseLine(`"Smith, John",Yes`)
	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %v", got)
	}
	if got[0] != "Smith, John" {
		t.Fatalf("first field: got %q", got[0])
	}
}

func TestParseLine_DoubledQuoteEscapes(t *testing.T) {
	got := ParseLine(`"Smith, ""Bob""",Gold`)
	if got[0] != `Smith, "Bob"` {
		t.Fatalf("got %q", got[0])
	}
	if got[1] != "Gold" {
		t.Fatalf("got %q", got[1])
	}
}

func TestParseLine_UnterminatedQuoteRunsToEndOfLine(t *testing.T) {
	got := ParseLine(`"Smith, John,Yes`)
	if len(got) != 1 {
		t.Fatalf("expected 1 field, got %v", got)
	}
	if got[0] != "Smith, John,Yes" {
		t.Fatalf("got %q", got[0])
	}
}

func TestParseLine_TrailingCommaYieldsEmptyField(t *testing.T) {
	got := ParseLine("a,b,")
	want := []string{"a", "b", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseLine_NoCommaYieldsSingleField(t *testing.T) {
	got := ParseLine("just one value")
	if len(got) != 1 || got[0] != "just one value" {
		t.Fatalf("got %v", got)
	}
}

func TestParseLine_StripsSingleQuotePair(t *testing.T) {
	got := ParseLine("'Yoga', 'HIIT'")
	want := []string{"Yoga", "HIIT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSplitLines_DropsBlankAndHandlesCRLF(t *testing.T) {
	got := SplitLines("a,b\r\n\r\nc,d\n   \ne,f")
	want := []string{"a,b", "c,d", "e,f"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
