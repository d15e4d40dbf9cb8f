package core

import (
	"math"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"123.45", 12345},
		{"₹1,234.50", 123450},
		{"Rs. 200", 20000},
		{" 2.505 ", 251}, // rounds half away from zero
		{"-42", -4200},
		{"0", 0},
		{"abc", 0},
		{"", 0},
		{"...", 0},
		{"12abc34", 123400},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got.Cents != tc.cents {
			t.Fatalf("ParseAmount(%q) = %d cents, want %d", tc.in, got.Cents, tc.cents)
		}
	}
}

// Reparsing a parsed amount formatted back to text must not drift.
func TestParseAmountIdempotent(t *testing.T) {
	for _, in := range []string{"123.45", "₹9,999.99", "0.01", "-5.50", "junk"} {
		first := ParseAmount(in)
		second := ParseAmount(first.String())
		if first != second {
			t.Fatalf("ParseAmount not idempotent for %q: %v then %v", in, first, second)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-03-05", true},
		{"2025-03-05 14:22:10", true},
		{"2025-03-05T14:22:10+05:30", true},
		{"2025/03/05", true},
		{"05-03-2025", true},
		{"05/03/2025", true},
		{"yesterday", false},
		{"", false},
		{"2025-13-40", false},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseDate(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if ok && !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, want)
		}
	}
}

func TestParseDateDiscardsTimeOfDay(t *testing.T) {
	a, ok1 := ParseDate("2025-03-05 14:22:10")
	b, ok2 := ParseDate("2025-03-05")
	if !ok1 || !ok2 || !a.Equal(b) {
		t.Fatalf("expected same date, got %v/%v (ok %v/%v)", a, b, ok1, ok2)
	}
}

func TestParseDurationHours(t *testing.T) {
	cases := []struct {
		in   string
		unit DurationUnit
		want float64
	}{
		{"1:00:00", UnitClock, 1.0},
		{"0:30:00", UnitClock, 0.5},
		{"45:00", UnitClock, 0.75},
		{"1:30", UnitClock, 0.025},
		{"3600", UnitSeconds, 1.0},
		{"5400", UnitSeconds, 1.5},
		{"90", UnitMinutes, 1.5},
		{"2.25", UnitHours, 2.25},
		{"bogus", UnitSeconds, 0},
		{"1:2:3:4", UnitClock, 0},
		{"-1:00:00", UnitClock, 0},
		{"", UnitHours, 0},
	}
	for _, tc := range cases {
		got := ParseDurationHours(tc.in, tc.unit)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ParseDurationHours(%q, %s) = %v, want %v", tc.in, tc.unit, got, tc.want)
		}
	}
}

func TestDurationUnitIsValid(t *testing.T) {
	for _, u := range []DurationUnit{UnitSeconds, UnitMinutes, UnitClock, UnitHours} {
		if !u.IsValid() {
			t.Fatalf("%s should be valid", u)
		}
	}
	if DurationUnit("fortnights").IsValid() {
		t.Fatal("unexpected valid unit")
	}
}
