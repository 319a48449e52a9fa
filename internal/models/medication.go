// ABOUTME: Medication model with frequency and daily status enums.
// ABOUTME: Defines the record the scheduler and adherence engine reason about.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Frequency represents how often a medication is taken.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// AllFrequencies returns all valid frequencies.
var AllFrequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// IsValidFrequency checks if a string is a valid frequency.
func IsValidFrequency(s string) bool {
	for _, f := range AllFrequencies {
		if string(f) == s {
			return true
		}
	}
	return false
}

// Status represents a medication's adherence outcome for a day.
type Status string

const (
	// StatusUnset is the pending state before any action on a given day.
	StatusUnset   Status = ""
	StatusTaken   Status = "taken"
	StatusSkipped Status = "skipped"
	// StatusMissed is only ever assigned by the daily rollover,
	// never by direct user action.
	StatusMissed Status = "missed"
)

// IsMarkable checks if a status can be set directly by the user.
func IsMarkable(s Status) bool {
	return s == StatusTaken || s == StatusSkipped
}

// Medication represents a registered medication with its daily reminder time.
//
// Weekly and monthly frequencies are stored but reminders currently repeat
// daily for every medication; only the frequency label differs.
type Medication struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Dosage    string    `json:"dosage" yaml:"dosage"`
	Frequency Frequency `json:"frequency" yaml:"frequency"`

	// Time is the daily reminder time as HH:MM in the local timezone.
	Time string `json:"time" yaml:"time"`

	// ReminderID is the trigger backend's identifier for the live daily
	// trigger, empty when scheduling failed or was never attempted.
	ReminderID string `json:"reminder_id,omitempty" yaml:"reminder_id,omitempty"`

	// TodayStatus is transient per-day state, cleared at each rollover.
	TodayStatus Status `json:"today_status,omitempty" yaml:"today_status,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewMedication creates a Medication with a generated UUID and current timestamp.
func NewMedication(name, dosage string, frequency Frequency, timeOfDay string) *Medication {
	return &Medication{
		ID:        uuid.New(),
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
		Time:      timeOfDay,
		CreatedAt: time.Now(),
	}
}

// ReminderMessage builds the alert text for this medication.
func (m *Medication) ReminderMessage() string {
	return "Time to take " + m.Name + " (" + m.Dosage + ")"
}
