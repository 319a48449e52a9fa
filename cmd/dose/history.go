// ABOUTME: History command rendering per-day adherence entries.
// ABOUTME: Optionally limited to the most recent N days.
package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/models"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show adherence history by day",
	Long: `Show recorded adherence events grouped by day, newest first.

Examples:
  dose history
  dose history --days 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := engine.History()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		dates := history.Dates()
		if len(dates) == 0 {
			fmt.Println("No history recorded yet.")
			return nil
		}
		// Newest first
		sort.Sort(sort.Reverse(sort.StringSlice(dates)))
		if historyDays > 0 && len(dates) > historyDays {
			dates = dates[:historyDays]
		}

		meds, err := engine.ListMedications()
		if err != nil {
			return fmt.Errorf("failed to list medications: %w", err)
		}
		names := make(map[string]string, len(meds))
		for _, med := range meds {
			names[med.ID.String()] = med.Name
		}

		for _, date := range dates {
			fmt.Println(date)
			for _, entry := range history[date] {
				name := names[entry.MedicationID.String()]
				if name == "" {
					name = entry.MedicationID.String()[:8]
				}
				fmt.Printf("  %s  %s %s\n", entry.Timestamp.Format("15:04"), name, historyStatus(entry.Status))
			}
		}
		return nil
	},
}

func historyStatus(s models.Status) string {
	switch s {
	case models.StatusTaken:
		return "taken"
	case models.StatusSkipped:
		return "skipped"
	case models.StatusMissed:
		return "missed"
	default:
		return string(s)
	}
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 0, "limit to the most recent N days")
	rootCmd.AddCommand(historyCmd)
}
