// ABOUTME: Wall-clock time helpers for medication reminder times.
// ABOUTME: Parses, formats, validates, and compares HH:MM strings.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse extracts an HH:MM string from a time.Time.
func Parse(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ParseString normalizes a raw HH:MM string. Invalid or empty input
// falls back to the current local time so reminder display never fails
// on bad stored data.
func ParseString(raw string) string {
	h, m, ok := split(raw)
	if !ok {
		return Current()
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Format renders an HH:MM string as 12-hour "h:mm AM/PM".
// Invalid input yields an empty string.
func Format(timeStr string) string {
	h, m, ok := split(timeStr)
	if !ok {
		return ""
	}
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}

// IsValid reports whether timeStr is a well-formed HH:MM wall-clock time.
func IsValid(timeStr string) bool {
	_, _, ok := split(timeStr)
	return ok
}

// Current returns the current local time as HH:MM.
func Current() string {
	return Parse(time.Now())
}

// Compare orders two HH:MM strings by hour then minute.
// Returns -1 if a is earlier, 0 if equal, 1 if a is later.
// Unparseable values compare as equal.
func Compare(a, b string) int {
	ah, am, aok := split(a)
	bh, bm, bok := split(b)
	if !aok || !bok {
		return 0
	}
	switch {
	case ah != bh && ah < bh:
		return -1
	case ah != bh:
		return 1
	case am < bm:
		return -1
	case am > bm:
		return 1
	}
	return 0
}

// IsAfter reports whether a is strictly later in the day than b.
func IsAfter(a, b string) bool {
	return Compare(a, b) > 0
}

// HourMinute splits an HH:MM string into its numeric parts.
func HourMinute(timeStr string) (hour, minute int, err error) {
	h, m, ok := split(timeStr)
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q (want HH:MM)", timeStr)
	}
	return h, m, nil
}

func split(timeStr string) (hour, minute int, ok bool) {
	parts := strings.SplitN(timeStr, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
