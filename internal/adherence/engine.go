// ABOUTME: Adherence engine recording taken/skipped/missed events.
// ABOUTME: Owns the daily status lifecycle, running stats, and history.
package adherence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/store"
	"github.com/harperreed/dose/internal/timeutil"
)

var (
	// ErrValidation is returned for rejected input; nothing is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned for operations on an unknown medication id.
	ErrNotFound = errors.New("medication not found")
)

// Rescheduler is the slice of the reminder scheduler the engine drives
// after medication-set changes.
type Rescheduler interface {
	ScheduleOne(id uuid.UUID) error
	CancelOne(id uuid.UUID) error
}

// NopRescheduler satisfies Rescheduler without touching any backend.
// One-shot CLI invocations use it; the reminder daemon reconciles
// triggers itself at startup and at every rollover.
type NopRescheduler struct{}

func (NopRescheduler) ScheduleOne(uuid.UUID) error { return nil }
func (NopRescheduler) CancelOne(uuid.UUID) error   { return nil }

// Engine is the sole writer of adherence stats and history. All writes
// for one logical operation happen inside a single Records transaction,
// so a concurrent mark or rollover can never observe or produce a
// half-applied update.
type Engine struct {
	records  *store.Records
	triggers Rescheduler
	log      zerolog.Logger
}

// New creates an Engine over the given records.
func New(records *store.Records, triggers Rescheduler, log zerolog.Logger) *Engine {
	if triggers == nil {
		triggers = NopRescheduler{}
	}
	return &Engine{records: records, triggers: triggers, log: log}
}

// AddMedication validates and persists a new medication, then requests a
// daily trigger for it. A scheduling failure (e.g. permission denied) is
// returned alongside the created medication: the record is kept, only
// the live trigger is missing.
func (e *Engine) AddMedication(name, dosage, frequency, timeOfDay string) (*models.Medication, error) {
	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if dosage == "" {
		return nil, fmt.Errorf("%w: dosage is required", ErrValidation)
	}
	if !models.IsValidFrequency(frequency) {
		return nil, fmt.Errorf("%w: unknown frequency %q (use daily, weekly, or monthly)", ErrValidation, frequency)
	}
	if !timeutil.IsValid(timeOfDay) {
		return nil, fmt.Errorf("%w: invalid time %q (use HH:MM)", ErrValidation, timeOfDay)
	}

	med := models.NewMedication(name, dosage, models.Frequency(frequency), timeutil.ParseString(timeOfDay))
	err := e.records.Update(func(st *store.State) error {
		st.Medications = append(st.Medications, med)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Str("medication_id", med.ID.String()).Str("name", med.Name).Msg("added medication")
	if err := e.triggers.ScheduleOne(med.ID); err != nil {
		return med, err
	}
	return med, nil
}

// DeleteMedication cancels the medication's trigger and removes it.
// History and stats are untouched; past doses stay counted.
func (e *Engine) DeleteMedication(id uuid.UUID) error {
	if err := e.triggers.CancelOne(id); err != nil {
		e.log.Warn().Err(err).Str("medication_id", id.String()).Msg("failed to cancel trigger on delete")
	}

	return e.records.Update(func(st *store.State) error {
		for i, med := range st.Medications {
			if med.ID == id {
				st.Medications = append(st.Medications[:i], st.Medications[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	})
}

// MarkStatus records a user action on a medication for the current day.
// Only taken and skipped are user-markable; missed is assigned by
// rollover alone.
//
// Marking is at-least-once in effect: re-marking overwrites TodayStatus
// but still appends a fresh history entry and increments the counters
// again.
func (e *Engine) MarkStatus(id uuid.UUID, status models.Status, when time.Time) error {
	if !models.IsMarkable(status) {
		return fmt.Errorf("%w: status must be taken or skipped, got %q", ErrValidation, status)
	}

	return e.records.Update(func(st *store.State) error {
		med := findMedication(st, id)
		if med == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		med.TodayStatus = status
		st.History.Append(models.HistoryEntry{
			MedicationID: id,
			Status:       status,
			Timestamp:    when,
		})
		st.Stats.Record(status, when)
		return nil
	})
}

// Rollover finalizes the ending day: every medication still unmarked is
// counted as missed (stats and history), then TodayStatus is cleared on
// all medications for the new day. Medications already marked were
// counted at mark time and are only cleared.
func (e *Engine) Rollover(now time.Time) error {
	var missed int
	err := e.records.Update(func(st *store.State) error {
		for _, med := range st.Medications {
			if med.TodayStatus == models.StatusUnset {
				st.History.Append(models.HistoryEntry{
					MedicationID: med.ID,
					Status:       models.StatusMissed,
					Timestamp:    now,
				})
				st.Stats.Record(models.StatusMissed, now)
				missed++
			}
			med.TodayStatus = models.StatusUnset
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Info().Int("missed", missed).Time("at", now).Msg("daily rollover complete")
	return nil
}

// ListMedications returns all registered medications.
func (e *Engine) ListMedications() ([]*models.Medication, error) {
	return e.records.Medications()
}

// GetMedication returns a medication by id.
func (e *Engine) GetMedication(id uuid.UUID) (*models.Medication, error) {
	var med *models.Medication
	err := e.records.View(func(st *store.State) error {
		med = findMedication(st, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return med, nil
}

// FindByPrefix resolves a medication by full id or id prefix. Ambiguous
// prefixes are rejected.
func (e *Engine) FindByPrefix(idOrPrefix string) (*models.Medication, error) {
	var matches []*models.Medication
	err := e.records.View(func(st *store.State) error {
		for _, med := range st.Medications {
			if strings.HasPrefix(med.ID.String(), strings.ToLower(idOrPrefix)) {
				matches = append(matches, med)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous id prefix %q matches %d medications", idOrPrefix, len(matches))
	}
}

// UpcomingDoses returns medications whose reminder time is still ahead
// of now today, sorted soonest first.
func (e *Engine) UpcomingDoses(now time.Time) ([]*models.Medication, error) {
	current := timeutil.Parse(now)

	var upcoming []*models.Medication
	err := e.records.View(func(st *store.State) error {
		for _, med := range st.Medications {
			if timeutil.IsValid(med.Time) && timeutil.IsAfter(med.Time, current) {
				upcoming = append(upcoming, med)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return timeutil.Compare(upcoming[i].Time, upcoming[j].Time) < 0
	})
	return upcoming, nil
}

// Stats returns the running adherence counters.
func (e *Engine) Stats() (models.AdherenceStats, error) {
	return e.records.Stats()
}

// Percentages returns per-status shares of all recorded doses.
func (e *Engine) Percentages() (models.Percentages, error) {
	stats, err := e.records.Stats()
	if err != nil {
		return models.Percentages{}, err
	}
	return stats.Percentages(), nil
}

// History returns the full adherence history.
func (e *Engine) History() (models.History, error) {
	return e.records.History()
}

// ResetAll clears medications, history, and stats. Irreversible.
func (e *Engine) ResetAll() error {
	meds, err := e.records.Medications()
	if err != nil {
		return err
	}
	for _, med := range meds {
		if err := e.triggers.CancelOne(med.ID); err != nil {
			e.log.Warn().Err(err).Str("medication_id", med.ID.String()).Msg("failed to cancel trigger on reset")
		}
	}
	return e.records.Reset()
}

func findMedication(st *store.State, id uuid.UUID) *models.Medication {
	for _, med := range st.Medications {
		if med.ID == id {
			return med
		}
	}
	return nil
}
