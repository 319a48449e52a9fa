// ABOUTME: Tests for the adherence engine.
// ABOUTME: Covers the daily lifecycle, rollover, stats math, and reset.
package adherence

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/store"
)

// countingRescheduler records schedule/cancel calls.
type countingRescheduler struct {
	scheduled []uuid.UUID
	cancelled []uuid.UUID
	err       error
}

func (c *countingRescheduler) ScheduleOne(id uuid.UUID) error {
	c.scheduled = append(c.scheduled, id)
	return c.err
}

func (c *countingRescheduler) CancelOne(id uuid.UUID) error {
	c.cancelled = append(c.cancelled, id)
	return nil
}

func newEngine(t *testing.T) (*Engine, *countingRescheduler) {
	t.Helper()
	triggers := &countingRescheduler{}
	return New(store.NewRecords(store.NewMemoryStore()), triggers, zerolog.Nop()), triggers
}

func TestAddMedication(t *testing.T) {
	e, triggers := newEngine(t)

	med, err := e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	if err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}
	if med.Name != "Aspirin" || med.Dosage != "100mg" || med.Time != "08:00" {
		t.Errorf("unexpected medication: %+v", med)
	}

	if len(triggers.scheduled) != 1 || triggers.scheduled[0] != med.ID {
		t.Errorf("expected one trigger scheduled for %s", med.ID)
	}

	meds, _ := e.ListMedications()
	if len(meds) != 1 {
		t.Errorf("medications = %d, want 1", len(meds))
	}
}

func TestAddMedicationValidation(t *testing.T) {
	e, triggers := newEngine(t)

	tests := []struct {
		name, dosage, freq, timeStr string
	}{
		{"", "100mg", "daily", "08:00"},
		{"   ", "100mg", "daily", "08:00"},
		{"Aspirin", "", "daily", "08:00"},
		{"Aspirin", "100mg", "hourly", "08:00"},
		{"Aspirin", "100mg", "daily", "25:00"},
		{"Aspirin", "100mg", "daily", ""},
	}

	for _, tt := range tests {
		if _, err := e.AddMedication(tt.name, tt.dosage, tt.freq, tt.timeStr); !errors.Is(err, ErrValidation) {
			t.Errorf("AddMedication(%q,%q,%q,%q) err = %v, want ErrValidation",
				tt.name, tt.dosage, tt.freq, tt.timeStr, err)
		}
	}

	// Nothing persisted, nothing scheduled.
	meds, _ := e.ListMedications()
	if len(meds) != 0 {
		t.Errorf("medications persisted on validation failure: %d", len(meds))
	}
	if len(triggers.scheduled) != 0 {
		t.Error("trigger scheduled on validation failure")
	}
}

func TestAddMedicationKeptOnScheduleFailure(t *testing.T) {
	e, triggers := newEngine(t)
	triggers.err = errors.New("permission denied")

	med, err := e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	if err == nil {
		t.Fatal("expected scheduling error to surface")
	}
	if med == nil {
		t.Fatal("medication should be returned despite scheduling failure")
	}

	meds, _ := e.ListMedications()
	if len(meds) != 1 {
		t.Error("medication should be saved without a live trigger")
	}
}

func TestDeleteMedication(t *testing.T) {
	e, triggers := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")

	if err := e.DeleteMedication(med.ID); err != nil {
		t.Fatalf("DeleteMedication failed: %v", err)
	}

	if len(triggers.cancelled) != 1 || triggers.cancelled[0] != med.ID {
		t.Error("expected trigger cancelled on delete")
	}
	meds, _ := e.ListMedications()
	if len(meds) != 0 {
		t.Errorf("medications = %d, want 0", len(meds))
	}
}

func TestDeleteMedicationNotFound(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.DeleteMedication(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMarkStatus(t *testing.T) {
	e, _ := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")

	when := time.Date(2025, 3, 14, 8, 5, 0, 0, time.Local)
	if err := e.MarkStatus(med.ID, models.StatusTaken, when); err != nil {
		t.Fatalf("MarkStatus failed: %v", err)
	}

	meds, _ := e.ListMedications()
	if meds[0].TodayStatus != models.StatusTaken {
		t.Errorf("TodayStatus = %q, want taken", meds[0].TodayStatus)
	}

	stats, _ := e.Stats()
	if stats.Taken != 1 || stats.Skipped != 0 || stats.Missed != 0 || stats.Total != 1 {
		t.Errorf("stats = %+v, want taken:1 total:1", stats)
	}
	if stats.LastUpdated == nil {
		t.Error("LastUpdated not set")
	}

	history, _ := e.History()
	if len(history["2025-03-14"]) != 1 {
		t.Errorf("history entries for date = %d, want 1", len(history["2025-03-14"]))
	}
}

func TestMarkStatusAtLeastOnceAccounting(t *testing.T) {
	e, _ := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")

	when := time.Date(2025, 3, 14, 8, 5, 0, 0, time.Local)
	_ = e.MarkStatus(med.ID, models.StatusTaken, when)
	_ = e.MarkStatus(med.ID, models.StatusTaken, when.Add(time.Minute))

	// Re-marking appends another entry and counts again.
	stats, _ := e.Stats()
	if stats.Taken != 2 || stats.Total != 2 {
		t.Errorf("stats = %+v, want taken:2 total:2", stats)
	}
	history, _ := e.History()
	if len(history["2025-03-14"]) != 2 {
		t.Errorf("history entries = %d, want 2", len(history["2025-03-14"]))
	}
}

func TestMarkStatusRejectsMissedAndUnset(t *testing.T) {
	e, _ := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")

	for _, status := range []models.Status{models.StatusMissed, models.StatusUnset, models.Status("bogus")} {
		if err := e.MarkStatus(med.ID, status, time.Now()); !errors.Is(err, ErrValidation) {
			t.Errorf("MarkStatus(%q) err = %v, want ErrValidation", status, err)
		}
	}
}

func TestMarkStatusNotFound(t *testing.T) {
	e, _ := newEngine(t)
	err := e.MarkStatus(uuid.New(), models.StatusTaken, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// No partial effects committed.
	stats, _ := e.Stats()
	if stats.Total != 0 {
		t.Errorf("stats mutated for unknown id: %+v", stats)
	}
}

func TestRolloverMarksUnsetAsMissed(t *testing.T) {
	e, _ := newEngine(t)
	taken, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	_, _ = e.AddMedication("Metformin", "500mg", "daily", "20:00")

	_ = e.MarkStatus(taken.ID, models.StatusTaken, time.Date(2025, 3, 14, 8, 5, 0, 0, time.Local))

	midnight := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	if err := e.Rollover(midnight); err != nil {
		t.Fatalf("Rollover failed: %v", err)
	}

	// The unmarked medication is counted missed; the taken one was
	// already counted at mark time and stays untouched in stats.
	stats, _ := e.Stats()
	if stats.Taken != 1 || stats.Missed != 1 || stats.Total != 2 {
		t.Errorf("stats = %+v, want taken:1 missed:1 total:2", stats)
	}

	history, _ := e.History()
	if len(history["2025-03-15"]) != 1 {
		t.Errorf("missed history entries = %d, want 1", len(history["2025-03-15"]))
	}

	// All statuses cleared for the new day.
	meds, _ := e.ListMedications()
	for _, med := range meds {
		if med.TodayStatus != models.StatusUnset {
			t.Errorf("%s TodayStatus = %q, want cleared", med.Name, med.TodayStatus)
		}
	}
}

func TestRolloverLeavesMarkedStatsUnchanged(t *testing.T) {
	e, _ := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	_ = e.MarkStatus(med.ID, models.StatusTaken, time.Now())

	before, _ := e.Stats()
	_ = e.Rollover(time.Now())
	after, _ := e.Stats()

	if after.Total != before.Total || after.Taken != before.Taken || after.Missed != before.Missed {
		t.Errorf("rollover changed stats for a marked medication: %+v -> %+v", before, after)
	}
}

func TestPercentages(t *testing.T) {
	e, _ := newEngine(t)

	p, err := e.Percentages()
	if err != nil {
		t.Fatalf("Percentages failed: %v", err)
	}
	if p.Taken != 0 || p.Skipped != 0 || p.Missed != 0 || p.Total != 0 {
		t.Errorf("expected all-zero percentages on empty stats, got %+v", p)
	}

	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	_ = e.MarkStatus(med.ID, models.StatusTaken, time.Now())
	_ = e.MarkStatus(med.ID, models.StatusSkipped, time.Now())
	_ = e.Rollover(time.Now()) // med already marked, no change
	_ = e.Rollover(time.Now()) // now unmarked, counted missed

	p, _ = e.Percentages()
	sum := p.Taken + p.Skipped + p.Missed
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("percentages sum = %f, want ~100", sum)
	}
	if p.Total != 3 {
		t.Errorf("Total = %d, want 3", p.Total)
	}
}

func TestUpcomingDoses(t *testing.T) {
	e, _ := newEngine(t)
	_, _ = e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	_, _ = e.AddMedication("Metformin", "500mg", "daily", "20:00")
	_, _ = e.AddMedication("Lisinopril", "10mg", "daily", "12:30")

	at7 := time.Date(2025, 3, 14, 7, 0, 0, 0, time.Local)
	upcoming, err := e.UpcomingDoses(at7)
	if err != nil {
		t.Fatalf("UpcomingDoses failed: %v", err)
	}
	if len(upcoming) != 3 {
		t.Fatalf("upcoming at 07:00 = %d, want 3", len(upcoming))
	}
	// Sorted soonest first.
	if upcoming[0].Name != "Aspirin" || upcoming[1].Name != "Lisinopril" || upcoming[2].Name != "Metformin" {
		t.Errorf("unexpected order: %s, %s, %s", upcoming[0].Name, upcoming[1].Name, upcoming[2].Name)
	}

	at9 := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	upcoming, _ = e.UpcomingDoses(at9)
	if len(upcoming) != 2 {
		t.Fatalf("upcoming at 09:00 = %d, want 2", len(upcoming))
	}
	for _, med := range upcoming {
		if med.Name == "Aspirin" {
			t.Error("08:00 dose should be excluded at 09:00")
		}
	}
}

func TestFindByPrefix(t *testing.T) {
	e, _ := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")

	got, err := e.FindByPrefix(med.ID.String()[:8])
	if err != nil {
		t.Fatalf("FindByPrefix failed: %v", err)
	}
	if got.ID != med.ID {
		t.Errorf("resolved wrong medication")
	}

	if _, err := e.FindByPrefix("zzzzzzzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResetAll(t *testing.T) {
	e, triggers := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	_ = e.MarkStatus(med.ID, models.StatusTaken, time.Now())

	if err := e.ResetAll(); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}

	if len(triggers.cancelled) != 1 {
		t.Error("expected triggers cancelled on reset")
	}
	meds, _ := e.ListMedications()
	stats, _ := e.Stats()
	history, _ := e.History()
	if len(meds) != 0 || stats.Total != 0 || history.EntryCount() != 0 {
		t.Errorf("state not cleared: meds=%d stats=%+v history=%d",
			len(meds), stats, history.EntryCount())
	}
}

func TestExportResetReplayRoundTrip(t *testing.T) {
	e, _ := newEngine(t)
	_, _ = e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	_, _ = e.AddMedication("Metformin", "500mg", "weekly", "20:00")

	export, err := e.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if err := e.ResetAll(); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}

	for _, med := range export.Medications {
		if _, err := e.AddMedication(med.Name, med.Dosage, string(med.Frequency), med.Time); err != nil {
			t.Fatalf("replay failed for %s: %v", med.Name, err)
		}
	}

	meds, _ := e.ListMedications()
	if len(meds) != 2 {
		t.Fatalf("replayed medications = %d, want 2", len(meds))
	}
	byName := map[string]*models.Medication{}
	for _, med := range meds {
		byName[med.Name] = med
	}
	if byName["Aspirin"] == nil || byName["Aspirin"].Time != "08:00" || byName["Aspirin"].Dosage != "100mg" {
		t.Errorf("Aspirin did not survive round trip: %+v", byName["Aspirin"])
	}
	if byName["Metformin"] == nil || byName["Metformin"].Frequency != models.FrequencyWeekly {
		t.Errorf("Metformin did not survive round trip: %+v", byName["Metformin"])
	}
}

func TestExportJSONDecodes(t *testing.T) {
	e, _ := newEngine(t)
	med, _ := e.AddMedication("Aspirin", "100mg", "daily", "08:00")
	_ = e.MarkStatus(med.ID, models.StatusTaken, time.Now())

	data, err := e.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var decoded Export
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.Tool != "dose" || len(decoded.Medications) != 1 {
		t.Errorf("unexpected export content: %+v", decoded)
	}
	if decoded.Stats.Taken != 1 {
		t.Errorf("export stats = %+v, want taken:1", decoded.Stats)
	}
}
