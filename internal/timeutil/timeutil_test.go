// ABOUTME: Tests for wall-clock time helpers.
// ABOUTME: Covers parsing, 12-hour formatting, validation, and ordering.
package timeutil

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tm := time.Date(2025, 3, 14, 8, 5, 0, 0, time.Local)
	if got := Parse(tm); got != "08:05" {
		t.Errorf("Parse = %q, want 08:05", got)
	}
}

func TestParseZeroFallsBack(t *testing.T) {
	got := Parse(time.Time{})
	if !IsValid(got) {
		t.Errorf("Parse(zero) = %q, want a valid current time", got)
	}
}

func TestParseStringFallsBackOnGarbage(t *testing.T) {
	for _, raw := range []string{"", "nonsense", "25:00", "12:75"} {
		got := ParseString(raw)
		if !IsValid(got) {
			t.Errorf("ParseString(%q) = %q, want valid fallback", raw, got)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08:00", "8:00 AM"},
		{"00:05", "12:05 AM"},
		{"12:00", "12:00 PM"},
		{"13:30", "1:30 PM"},
		{"23:59", "11:59 PM"},
		{"", ""},
		{"garbage", ""},
		{"24:00", ""},
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"8:5", true},
		{"24:00", false},
		{"12:60", false},
		{"-1:00", false},
		{"12", false},
		{"", false},
		{"aa:bb", false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.in); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"08:00", "09:00", -1},
		{"09:00", "08:00", 1},
		{"08:15", "08:15", 0},
		{"08:10", "08:20", -1},
		{"08:20", "08:10", 1},
		{"bad", "08:00", 0},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsAfter(t *testing.T) {
	if !IsAfter("09:00", "08:59") {
		t.Error("expected 09:00 after 08:59")
	}
	if IsAfter("08:00", "08:00") {
		t.Error("expected equal times not after")
	}
}

func TestHourMinute(t *testing.T) {
	h, m, err := HourMinute("07:45")
	if err != nil {
		t.Fatalf("HourMinute failed: %v", err)
	}
	if h != 7 || m != 45 {
		t.Errorf("HourMinute = %d:%d, want 7:45", h, m)
	}

	if _, _, err := HourMinute("nope"); err == nil {
		t.Error("expected error for invalid time")
	}
}
