// ABOUTME: Remind command running the foreground reminder daemon.
// ABOUTME: Wires triggers, alerts, midnight rollover, and a stdin response loop.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/adherence"
	"github.com/harperreed/dose/internal/alert"
	"github.com/harperreed/dose/internal/clock"
	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/scheduler"
	"github.com/harperreed/dose/internal/trigger"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the foreground reminder daemon",
	Long: `Run the reminder daemon in the foreground.

The daemon schedules a daily trigger for every medication, fires
desktop and terminal alerts at their reminder times, rolls unmarked
medications to "missed" at midnight, and reschedules everything for
the new day.

While it runs, respond to reminders on stdin:

  taken <id>          Mark the dose taken
  skip <id>           Mark the dose skipped
  snooze <id> [min]   Re-alert after N minutes (default from config)
  quit                Stop the daemon

IDs may be unique prefixes. Stop with Ctrl+C or 'quit'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sound := cfg.GetAlert()
		sink := fanoutSink{
			alert.NewTerminal(os.Stdout, sound),
			alert.NewDesktop(sound, log),
		}

		var sched *scheduler.Scheduler
		backend, err := trigger.NewLocal(func(id string, p trigger.Payload) {
			if err := sched.HandleFire(id, p); err != nil {
				log.Warn().Err(err).Str("trigger", id).Msg("unhandled reminder trigger")
			}
		}, cfg.GetChannel(), log)
		if err != nil {
			return fmt.Errorf("failed to start trigger backend: %w", err)
		}
		sched = scheduler.New(records, backend, sink, log)
		sched.DefaultSnooze = time.Duration(cfg.GetSnoozeMinutes()) * time.Minute

		// CLI's engine uses the nop rescheduler; the daemon wants the real one.
		engine = adherence.New(records, sched, log)

		granted, err := backend.RequestPermission()
		if err != nil {
			return fmt.Errorf("failed to request notification permission: %w", err)
		}
		if !granted {
			color.Yellow("⚠ Notification permission denied; reminders will not fire")
		}

		backend.Start()
		defer backend.Stop()

		if err := sched.ResyncAll(); err != nil {
			return fmt.Errorf("failed to schedule reminders: %w", err)
		}

		midnight, err := clock.NewMidnight(engine, sched, log)
		if err != nil {
			return fmt.Errorf("failed to start midnight clock: %w", err)
		}
		midnight.Start()
		defer midnight.Stop()

		meds, err := engine.ListMedications()
		if err != nil {
			return err
		}
		color.Green("✓ Reminder daemon running (%d medications)", len(meds))
		fmt.Println("Respond with: taken <id> | skip <id> | snooze <id> [min] | quit")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		lines := make(chan string)
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				lines <- scanner.Text()
			}
			close(lines)
		}()

		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopping reminder daemon")
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if handleResponse(sched, line) {
					fmt.Println("Stopping reminder daemon")
					return nil
				}
			}
		}
	},
}

// fanoutSink presents on every sink and reports the first failure.
type fanoutSink []alert.Sink

func (f fanoutSink) Present(p trigger.Payload) error {
	var first error
	for _, s := range f {
		if err := s.Present(p); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanoutSink) Dismiss() {
	for _, s := range f {
		s.Dismiss()
	}
}

// handleResponse processes one stdin line. Returns true on quit.
func handleResponse(sched *scheduler.Scheduler, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "quit", "exit", "q":
		return true
	case "taken", "skip", "snooze":
	default:
		fmt.Printf("Unknown command %q (taken, skip, snooze, quit)\n", fields[0])
		return false
	}
	if len(fields) < 2 {
		fmt.Printf("Usage: %s <id>\n", fields[0])
		return false
	}

	med, err := engine.FindByPrefix(fields[1])
	if err != nil {
		color.Red("✗ %v", err)
		return false
	}

	switch fields[0] {
	case "taken":
		if err := engine.MarkStatus(med.ID, models.StatusTaken, time.Now()); err != nil {
			color.Red("✗ %v", err)
			return false
		}
		color.Green("✓ Marked %s as taken", med.Name)
	case "skip":
		if err := engine.MarkStatus(med.ID, models.StatusSkipped, time.Now()); err != nil {
			color.Red("✗ %v", err)
			return false
		}
		color.Yellow("– Marked %s as skipped", med.Name)
	case "snooze":
		d := sched.DefaultSnooze
		if len(fields) >= 3 {
			minutes, err := strconv.Atoi(fields[2])
			if err != nil || minutes <= 0 {
				fmt.Println("Snooze minutes must be a positive number")
				return false
			}
			d = time.Duration(minutes) * time.Minute
		}
		if err := sched.Snooze(med.ID, d); err != nil {
			color.Red("✗ %v", err)
			return false
		}
		color.Yellow("⏰ Snoozed %s for %s", med.Name, d)
	}
	return false
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
