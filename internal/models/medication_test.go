// ABOUTME: Tests for medication, history, and stats models.
// ABOUTME: Validates enums, constructors, counters, and percentage math.
package models

import (
	"testing"
	"time"
)

func TestNewMedication(t *testing.T) {
	m := NewMedication("Aspirin", "100mg", FrequencyDaily, "08:00")

	if m.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if m.Name != "Aspirin" {
		t.Errorf("Name = %s, want Aspirin", m.Name)
	}
	if m.Time != "08:00" {
		t.Errorf("Time = %s, want 08:00", m.Time)
	}
	if m.TodayStatus != StatusUnset {
		t.Errorf("TodayStatus = %q, want unset", m.TodayStatus)
	}
	if m.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestReminderMessage(t *testing.T) {
	m := NewMedication("Aspirin", "100mg", FrequencyDaily, "08:00")
	want := "Time to take Aspirin (100mg)"
	if got := m.ReminderMessage(); got != want {
		t.Errorf("ReminderMessage = %q, want %q", got, want)
	}
}

func TestIsValidFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"daily", true},
		{"weekly", true},
		{"monthly", true},
		{"hourly", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidFrequency(tt.in); got != tt.want {
			t.Errorf("IsValidFrequency(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsMarkable(t *testing.T) {
	if !IsMarkable(StatusTaken) || !IsMarkable(StatusSkipped) {
		t.Error("taken and skipped must be user-markable")
	}
	if IsMarkable(StatusMissed) {
		t.Error("missed is rollover-only, not user-markable")
	}
	if IsMarkable(StatusUnset) {
		t.Error("unset is not a markable status")
	}
}

func TestStatsRecord(t *testing.T) {
	var s AdherenceStats
	now := time.Now()

	s.Record(StatusTaken, now)
	s.Record(StatusTaken, now)
	s.Record(StatusMissed, now)

	if s.Taken != 2 || s.Missed != 1 || s.Skipped != 0 {
		t.Errorf("counters = %d/%d/%d, want 2/0/1", s.Taken, s.Skipped, s.Missed)
	}
	if s.Total != 3 {
		t.Errorf("Total = %d, want 3", s.Total)
	}
	if s.LastUpdated == nil {
		t.Error("expected LastUpdated to be set")
	}
}

func TestStatsRecordIgnoresUnset(t *testing.T) {
	var s AdherenceStats
	s.Record(StatusUnset, time.Now())
	if s.Total != 0 {
		t.Errorf("Total = %d, want 0", s.Total)
	}
}

func TestPercentagesZeroTotal(t *testing.T) {
	var s AdherenceStats
	p := s.Percentages()
	if p.Taken != 0 || p.Skipped != 0 || p.Missed != 0 || p.Total != 0 {
		t.Errorf("expected all-zero percentages, got %+v", p)
	}
}

func TestPercentagesSumTo100(t *testing.T) {
	s := AdherenceStats{Taken: 2, Skipped: 1, Missed: 1, Total: 4}
	p := s.Percentages()

	sum := p.Taken + p.Skipped + p.Missed
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("percentages sum = %f, want 100", sum)
	}
	if p.Taken != 50 {
		t.Errorf("Taken%% = %f, want 50", p.Taken)
	}
}

func TestHistoryAppendGroupsByDate(t *testing.T) {
	h := History{}
	m := NewMedication("Aspirin", "100mg", FrequencyDaily, "08:00")

	day1 := time.Date(2025, 3, 14, 8, 5, 0, 0, time.Local)
	day2 := time.Date(2025, 3, 15, 8, 5, 0, 0, time.Local)

	h.Append(HistoryEntry{MedicationID: m.ID, Status: StatusTaken, Timestamp: day1})
	h.Append(HistoryEntry{MedicationID: m.ID, Status: StatusTaken, Timestamp: day1})
	h.Append(HistoryEntry{MedicationID: m.ID, Status: StatusMissed, Timestamp: day2})

	if len(h["2025-03-14"]) != 2 {
		t.Errorf("day1 entries = %d, want 2", len(h["2025-03-14"]))
	}
	if len(h["2025-03-15"]) != 1 {
		t.Errorf("day2 entries = %d, want 1", len(h["2025-03-15"]))
	}
	if h.EntryCount() != 3 {
		t.Errorf("EntryCount = %d, want 3", h.EntryCount())
	}

	dates := h.Dates()
	if len(dates) != 2 || dates[0] != "2025-03-14" || dates[1] != "2025-03-15" {
		t.Errorf("Dates = %v, want sorted ascending", dates)
	}
}
