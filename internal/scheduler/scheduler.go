// ABOUTME: Reminder scheduler reconciling medications with the trigger backend.
// ABOUTME: Ensures exactly one live daily trigger per medication with a valid time.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/store"
	"github.com/harperreed/dose/internal/timeutil"
	"github.com/harperreed/dose/internal/trigger"
)

// ErrNotFound is returned for operations referencing an unknown medication.
var ErrNotFound = errors.New("medication not found")

// Scheduler keeps the trigger backend's live set of daily triggers
// synchronized with the medication list. It is the sole writer of each
// medication's ReminderID.
type Scheduler struct {
	records *store.Records
	backend trigger.Backend
	sink    Sink
	log     zerolog.Logger

	// DefaultSnooze is applied when a snooze request gives no duration.
	DefaultSnooze time.Duration
}

// Sink is the alert surface fired triggers are routed to.
type Sink interface {
	Present(p trigger.Payload) error
	Dismiss()
}

// New creates a Scheduler over the given records and backend.
func New(records *store.Records, backend trigger.Backend, sink Sink, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		records:       records,
		backend:       backend,
		sink:          sink,
		log:           log,
		DefaultSnooze: 5 * time.Minute,
	}
}

// ResyncAll cancels every currently scheduled trigger and schedules a
// fresh daily trigger for each medication with a valid time.
//
// Cancel-all-then-reschedule-all leaves a brief window with no live
// triggers, but runs only at startup, at midnight rollover, and after
// medication-set changes, never mid-interaction. Per-medication
// scheduling failures are logged and recorded as an empty ReminderID
// rather than aborting the resync.
func (s *Scheduler) ResyncAll() error {
	scheduled, err := s.backend.ListScheduled()
	if err != nil {
		return fmt.Errorf("list scheduled triggers: %w", err)
	}
	for _, id := range scheduled {
		if err := s.backend.Cancel(id); err != nil {
			s.log.Warn().Err(err).Str("medication_id", id).Msg("failed to cancel stale trigger")
		}
	}

	var count int
	err = s.records.Update(func(st *store.State) error {
		for _, med := range st.Medications {
			if !timeutil.IsValid(med.Time) {
				med.ReminderID = ""
				continue
			}
			triggerID, err := s.schedule(med)
			if err != nil {
				s.log.Warn().Err(err).Str("medication_id", med.ID.String()).Msg("failed to schedule reminder")
				med.ReminderID = ""
				continue
			}
			med.ReminderID = triggerID
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("scheduled", count).Msg("resynced reminders")
	return nil
}

// ScheduleOne cancels any existing trigger for the medication and
// schedules a fresh one, persisting the new trigger id. Returns
// trigger.ErrPermissionDenied when the backend refuses; the medication
// record is still kept, just without a live trigger.
func (s *Scheduler) ScheduleOne(id uuid.UUID) error {
	var schedErr error
	err := s.records.Update(func(st *store.State) error {
		med := findMedication(st, id)
		if med == nil {
			return ErrNotFound
		}
		if !timeutil.IsValid(med.Time) {
			return fmt.Errorf("medication %s has invalid time %q", id, med.Time)
		}

		if err := s.backend.Cancel(med.ID.String()); err != nil {
			s.log.Warn().Err(err).Str("medication_id", med.ID.String()).Msg("failed to cancel old trigger")
		}

		triggerID, err := s.schedule(med)
		if err != nil {
			// Keep the medication saved without a live trigger and
			// surface the failure to the caller.
			med.ReminderID = ""
			schedErr = err
			return nil
		}
		med.ReminderID = triggerID
		return nil
	})
	if err != nil {
		return err
	}
	return schedErr
}

// CancelOne cancels the live trigger for a medication, used on delete.
func (s *Scheduler) CancelOne(id uuid.UUID) error {
	if err := s.backend.Cancel(id.String()); err != nil {
		return fmt.Errorf("cancel trigger: %w", err)
	}
	return nil
}

// HandleFire routes a fired trigger to the alert sink. Unknown ids are
// logged and dropped; the trigger may belong to a deleted medication.
func (s *Scheduler) HandleFire(id string, p trigger.Payload) error {
	medID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("fired trigger has invalid id %q: %w", id, err)
	}

	var med *models.Medication
	err = s.records.View(func(st *store.State) error {
		med = findMedication(st, medID)
		return nil
	})
	if err != nil {
		return err
	}
	if med == nil {
		s.log.Warn().Str("medication_id", id).Msg("trigger fired for unknown medication")
		return ErrNotFound
	}

	if p.Message == "" {
		p.Message = med.ReminderMessage()
	}
	p.MedicationID = med.ID.String()

	if err := s.sink.Present(p); err != nil {
		s.log.Error().Err(err).Str("medication_id", id).Msg("failed to present alert")
		return err
	}
	return nil
}

// Snooze schedules a one-shot re-fire for the medication after d,
// leaving its permanent daily trigger untouched.
func (s *Scheduler) Snooze(id uuid.UUID, d time.Duration) error {
	if d <= 0 {
		d = s.DefaultSnooze
	}

	var med *models.Medication
	err := s.records.View(func(st *store.State) error {
		med = findMedication(st, id)
		return nil
	})
	if err != nil {
		return err
	}
	if med == nil {
		return ErrNotFound
	}

	s.sink.Dismiss()
	_, err = s.backend.ScheduleOnce(med.ID.String(), time.Now().Add(d), trigger.Payload{
		MedicationID: med.ID.String(),
		Message:      med.ReminderMessage(),
	})
	if err != nil {
		return fmt.Errorf("snooze %s: %w", id, err)
	}

	s.log.Info().Str("medication_id", id.String()).Dur("for", d).Msg("snoozed reminder")
	return nil
}

func (s *Scheduler) schedule(med *models.Medication) (string, error) {
	hour, minute, err := timeutil.HourMinute(med.Time)
	if err != nil {
		return "", err
	}
	return s.backend.Schedule(med.ID.String(), hour, minute, trigger.Payload{
		MedicationID: med.ID.String(),
		Message:      med.ReminderMessage(),
	})
}

func findMedication(st *store.State, id uuid.UUID) *models.Medication {
	for _, med := range st.Medications {
		if med.ID == id {
			return med
		}
	}
	return nil
}
