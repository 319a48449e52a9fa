// ABOUTME: Upcoming command listing doses still ahead of the current time.
// ABOUTME: Sorted soonest first; medications with invalid times are excluded.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/timeutil"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show doses still ahead of now",
	Long: `Show medications whose reminder time is later today, sorted
soonest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		meds, err := engine.UpcomingDoses(time.Now())
		if err != nil {
			return fmt.Errorf("failed to load upcoming doses: %w", err)
		}
		if len(meds) == 0 {
			fmt.Println("No more doses today.")
			return nil
		}
		fmt.Printf("Upcoming doses (%d):\n", len(meds))
		for _, med := range meds {
			fmt.Printf("  %s  %s (%s)\n", timeutil.Format(med.Time), med.Name, med.Dosage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upcomingCmd)
}
