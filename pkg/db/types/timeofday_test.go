package types

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"09:00", NewTimeOfDay(9, 0, 0)},
		{"17:30", NewTimeOfDay(17, 30, 0)},
		{"23:59:59", NewTimeOfDay(23, 59, 59)},
		{"00:00", 0},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: got %v want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}

func TestAddMinutesWrapsMidnight(t *testing.T) {
	early := NewTimeOfDay(0, 10, 0).AddMinutes(-30)
	if early.HHMM() != "23:40" {
		t.Fatalf("expected wrap to 23:40, got %s", early.HHMM())
	}

	late := NewTimeOfDay(23, 50, 0).AddMinutes(30)
	if late.HHMM() != "00:20" {
		t.Fatalf("expected wrap to 00:20, got %s", late.HHMM())
	}
}

func TestScanRoundTrip(t *testing.T) {
	var tod TimeOfDay
	if err := tod.Scan("13:45:10"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if tod.String() != "13:45:10" {
		t.Fatalf("unexpected value %s", tod)
	}

	val, err := tod.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if val != "13:45:10" {
		t.Fatalf("unexpected driver value %v", val)
	}

	stamp := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	if err := tod.Scan(stamp); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if tod.HHMM() != "08:30" {
		t.Fatalf("unexpected scanned time %s", tod.HHMM())
	}
}
