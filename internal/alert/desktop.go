// ABOUTME: Desktop notification sink using system notifications.
// ABOUTME: Plays the platform alert sound when volume is non-zero.
package alert

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/harperreed/dose/internal/trigger"
	"github.com/rs/zerolog"
)

const notificationTitle = "Medication Reminder"

// Desktop presents reminders as OS desktop notifications.
type Desktop struct {
	sound SoundOptions
	log   zerolog.Logger
}

// NewDesktop creates a desktop notification sink.
func NewDesktop(sound SoundOptions, log zerolog.Logger) *Desktop {
	return &Desktop{sound: sound, log: log}
}

// Present shows a desktop notification for the reminder.
func (d *Desktop) Present(p trigger.Payload) error {
	var err error
	if d.sound.Volume > 0 {
		err = beeep.Alert(notificationTitle, p.Message, "")
	} else {
		err = beeep.Notify(notificationTitle, p.Message, "")
	}
	if err != nil {
		return fmt.Errorf("present notification: %w", err)
	}

	d.log.Info().Str("medication_id", p.MedicationID).Msg("presented desktop alert")
	return nil
}

// Dismiss is a no-op; desktop notifications dismiss themselves.
func (d *Desktop) Dismiss() {}
