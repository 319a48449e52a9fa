// ABOUTME: Reset command wiping all medications, history, and statistics.
// ABOUTME: Requires --force or interactive confirmation.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all medications, history, and statistics",
	Long: `Delete all stored data: medications, adherence history, and
lifetime statistics. Scheduled reminders are cancelled.

This cannot be undone. Consider 'dose export' first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			fmt.Print("This deletes ALL medication data. Type 'yes' to continue: ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.TrimSpace(answer) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}
		if err := engine.ResetAll(); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		color.Green("✓ All data deleted")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}
