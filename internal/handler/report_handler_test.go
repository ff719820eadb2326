package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseReportDate(t *testing.T) {
	date, err := parseReportDate("2026-03-15")
	if err != nil {
		t.Fatalf("date-only parse failed: %v", err)
	}
	if date.Year() != 2026 || date.Month() != time.March || date.Day() != 15 {
		t.Fatalf("unexpected date %v", date)
	}

	date, err = parseReportDate("2026-03-15T14:30:00Z")
	if err != nil {
		t.Fatalf("RFC3339 parse failed: %v", err)
	}
	if date.Hour() != 14 {
		t.Fatalf("expected 14:30, got %v", date)
	}

	if _, err := parseReportDate("03/15/2026"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestDecimalOrZero(t *testing.T) {
	if got := decimalOrZero(nil); !got.IsZero() {
		t.Fatalf("expected zero for nil, got %s", got)
	}

	value := decimal.NewFromInt(42)
	if got := decimalOrZero(&value); !got.Equal(value) {
		t.Fatalf("expected 42, got %s", got)
	}
}

func TestAnyNegative(t *testing.T) {
	plus := decimal.NewFromInt(10)
	minus := decimal.NewFromInt(-1)

	if anyNegative(nil, &plus, &decimal.Zero) {
		t.Fatal("expected no negative among nil, positive and zero")
	}
	if !anyNegative(&plus, nil, &minus) {
		t.Fatal("expected negative amount to be detected")
	}
}

func TestRenderNotesSanitizes(t *testing.T) {
	if got := renderNotes("   "); got != "" {
		t.Fatalf("expected empty output for blank notes, got %q", got)
	}

	got := renderNotes("**busy** morning")
	if !strings.Contains(got, "<strong>busy</strong>") {
		t.Fatalf("expected bold markdown rendered, got %q", got)
	}

	got = renderNotes("hello <script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected script tags stripped, got %q", got)
	}
}
