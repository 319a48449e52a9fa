// ABOUTME: Trigger backend abstraction for daily reminder alarms.
// ABOUTME: Defines scheduling, cancellation, and fire-event delivery.
package trigger

import (
	"errors"
	"time"
)

// ErrPermissionDenied is returned when the backend refuses to schedule
// triggers. The caller surfaces this to the user; there is no silent
// retry since permission state requires user action.
var ErrPermissionDenied = errors.New("trigger permission denied")

// Payload carries the reminder content delivered when a trigger fires.
type Payload struct {
	MedicationID string `json:"medication_id"`
	Message      string `json:"message"`
}

// FireHandler receives fired triggers. id is the medication id the
// trigger was scheduled under.
type FireHandler func(id string, p Payload)

// ChannelConfig enumerates the recognized notification channel fields.
type ChannelConfig struct {
	Channel          string `json:"channel"`
	Importance       string `json:"importance"`
	VibrationPattern []int  `json:"vibration_pattern"`
	Sound            string `json:"sound"`
}

// DefaultChannelConfig returns the reminder channel settings.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		Channel:          "medication-reminders",
		Importance:       "max",
		VibrationPattern: []int{0, 250, 250, 250},
		Sound:            "default",
	}
}

// Backend schedules recurring daily triggers keyed by medication id.
//
// Implementations guarantee at most one live daily trigger per id:
// Schedule cancels any existing trigger for the same id before
// scheduling a fresh one.
type Backend interface {
	// RequestPermission asks the platform for permission to deliver
	// triggers. Returns false when denied.
	RequestPermission() (bool, error)

	// Schedule registers a recurring daily trigger at hour:minute and
	// returns the backend's identifier for it.
	Schedule(id string, hour, minute int, p Payload) (string, error)

	// ScheduleOnce registers a one-shot trigger at the given instant,
	// used for snoozed alerts. It does not touch the daily trigger.
	ScheduleOnce(id string, at time.Time, p Payload) (string, error)

	// Cancel removes the live trigger for id. Cancelling an unknown id
	// is not an error.
	Cancel(id string) error

	// ListScheduled returns the medication ids with live daily triggers.
	ListScheduled() ([]string, error)
}
