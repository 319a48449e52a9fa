// ABOUTME: Terminal alert sink for the foreground reminder daemon.
// ABOUTME: Prints a highlighted banner and rings the terminal bell.
package alert

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/dose/internal/trigger"
)

// Terminal presents reminders as colored terminal output.
type Terminal struct {
	out   io.Writer
	sound SoundOptions
}

// NewTerminal creates a terminal sink writing to out.
func NewTerminal(out io.Writer, sound SoundOptions) *Terminal {
	return &Terminal{out: out, sound: sound}
}

// Present prints the reminder banner with response instructions.
func (t *Terminal) Present(p trigger.Payload) error {
	if t.sound.Volume > 0 {
		fmt.Fprint(t.out, "\a")
	}

	banner := color.New(color.FgHiYellow, color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, banner.Sprintf("⏰ %s", p.Message))
	fmt.Fprintln(t.out, faint.Sprintf("   taken %s | skip %s | snooze %s [minutes]",
		short(p.MedicationID), short(p.MedicationID), short(p.MedicationID)))
	return nil
}

// Dismiss is a no-op for terminal output.
func (t *Terminal) Dismiss() {}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
