// ABOUTME: Add command for registering a new medication.
// ABOUTME: Validates name, dosage, frequency, and HH:MM reminder time.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/adherence"
	"github.com/harperreed/dose/internal/timeutil"
	"github.com/harperreed/dose/internal/trigger"
)

var addFrequency string

var addCmd = &cobra.Command{
	Use:   "add <name> <dosage> [time]",
	Short: "Register a new medication",
	Long: `Register a new medication with a daily reminder time.

The time is 24-hour HH:MM. If omitted or unparseable, the current
time is used.

Examples:
  dose add Aspirin 100mg 08:00
  dose add Metformin 500mg 19:30 --frequency daily
  dose add "Vitamin D" 1000IU`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dosage := args[1]
		at := ""
		if len(args) == 3 {
			at = args[2]
		}
		at = timeutil.ParseString(at)

		med, err := engine.AddMedication(name, dosage, addFrequency, at)
		if err != nil {
			if errors.Is(err, trigger.ErrPermissionDenied) {
				color.Yellow("⚠ Saved %s, but reminders are not permitted", med.Name)
				return nil
			}
			if errors.Is(err, adherence.ErrValidation) {
				return err
			}
			if med != nil {
				color.Yellow("⚠ Saved %s, but scheduling failed: %v", med.Name, err)
				return nil
			}
			return fmt.Errorf("failed to add medication: %w", err)
		}

		color.Green("✓ Added %s (%s) at %s", med.Name, med.Dosage, timeutil.Format(med.Time))
		fmt.Printf("  ID: %s\n", med.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addFrequency, "frequency", "f", "daily", "frequency: daily, weekly, or monthly")
	rootCmd.AddCommand(addCmd)
}
