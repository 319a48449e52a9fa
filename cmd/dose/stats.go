// ABOUTME: Stats command showing lifetime adherence counters and percentages.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime adherence statistics",
	Long: `Show lifetime adherence counters (taken, skipped, missed) and
their percentages of all recorded events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := engine.Stats()
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		if stats.Total == 0 {
			fmt.Println("No adherence events recorded yet.")
			return nil
		}
		pct := stats.Percentages()
		fmt.Printf("Adherence (%d events):\n", stats.Total)
		color.Green("  ✓ taken:   %d (%.1f%%)", stats.Taken, pct.Taken)
		color.Yellow("  – skipped: %d (%.1f%%)", stats.Skipped, pct.Skipped)
		color.Red("  ✗ missed:  %d (%.1f%%)", stats.Missed, pct.Missed)
		if stats.LastUpdated != nil {
			fmt.Printf("  Last updated: %s\n", stats.LastUpdated.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
