// ABOUTME: Delete command removing a medication by ID prefix.
// ABOUTME: History and adherence statistics are left untouched.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a medication",
	Long: `Delete a medication by its ID (or a unique prefix of it).

The medication's daily reminder is cancelled. Past history entries and
adherence statistics are preserved.

Example:
  dose delete abc12345`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		med, err := engine.FindByPrefix(args[0])
		if err != nil {
			return err
		}
		if err := engine.DeleteMedication(med.ID); err != nil {
			return fmt.Errorf("failed to delete medication: %w", err)
		}
		color.Green("✓ Deleted %s (%s)", med.Name, med.Dosage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
