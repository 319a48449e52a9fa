// ABOUTME: Alert sink abstraction for presenting medication reminders.
// ABOUTME: Defines the Sink interface and explicit sound options.
package alert

import "github.com/harperreed/dose/internal/trigger"

// SoundOptions enumerates the recognized alert sound fields.
type SoundOptions struct {
	Loop   bool    `json:"loop"`
	Volume float64 `json:"volume"`
}

// DefaultSoundOptions returns the alert sound settings.
func DefaultSoundOptions() SoundOptions {
	return SoundOptions{Loop: false, Volume: 1.0}
}

// Sink presents a reminder alert to the user. Present is best-effort;
// a failed presentation is reported but never fatal.
type Sink interface {
	Present(p trigger.Payload) error
	Dismiss()
}
