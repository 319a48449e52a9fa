// ABOUTME: List command showing all medications and today's status.
// ABOUTME: Renders a table with short IDs, times, and colored statuses.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/timeutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all medications",
	Long: `List all registered medications with their reminder times and
today's status (pending, taken, skipped, or missed).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		meds, err := engine.ListMedications()
		if err != nil {
			return fmt.Errorf("failed to list medications: %w", err)
		}
		if len(meds) == 0 {
			fmt.Println("No medications yet. Add one with 'dose add <name> <dosage> [time]'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDOSAGE\tTIME\tFREQUENCY\tTODAY")
		for _, med := range meds {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				med.ID.String()[:8],
				med.Name,
				med.Dosage,
				timeutil.Format(med.Time),
				med.Frequency,
				statusLabel(med.TodayStatus),
			)
		}
		return w.Flush()
	},
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusTaken:
		return color.GreenString("✓ taken")
	case models.StatusSkipped:
		return color.YellowString("– skipped")
	case models.StatusMissed:
		return color.RedString("✗ missed")
	default:
		return "pending"
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
