// ABOUTME: Taken and skip commands recording today's dose status.
// ABOUTME: Each mark updates status, history, and lifetime counters together.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/models"
)

var takenCmd = &cobra.Command{
	Use:   "taken <id>",
	Short: "Mark today's dose as taken",
	Long: `Mark today's dose of a medication as taken.

The status, a history entry, and the lifetime taken counter are all
recorded in one step. Marking again records an additional entry.

Example:
  dose taken abc12345`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return markStatus(args[0], models.StatusTaken)
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip <id>",
	Short: "Mark today's dose as skipped",
	Long: `Mark today's dose of a medication as deliberately skipped.

Example:
  dose skip abc12345`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return markStatus(args[0], models.StatusSkipped)
	},
}

func markStatus(prefix string, status models.Status) error {
	med, err := engine.FindByPrefix(prefix)
	if err != nil {
		return err
	}
	if err := engine.MarkStatus(med.ID, status, time.Now()); err != nil {
		return fmt.Errorf("failed to mark %s: %w", med.Name, err)
	}
	switch status {
	case models.StatusTaken:
		color.Green("✓ Marked %s as taken", med.Name)
	case models.StatusSkipped:
		color.Yellow("– Marked %s as skipped", med.Name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(takenCmd)
	rootCmd.AddCommand(skipCmd)
}
