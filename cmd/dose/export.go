// ABOUTME: Export command writing all medication data as JSON or YAML.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/adherence"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON or YAML",
	Long: `Export medications, history, and adherence statistics.

Examples:
  dose export                      # JSON to stdout
  dose export --format yaml
  dose export -o backup.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		switch exportFormat {
		case "json":
			data, err = engine.ExportJSON()
		case "yaml", "yml":
			data, err = engine.ExportYAML()
		default:
			return fmt.Errorf("%w: unknown format %q (use json or yaml)", adherence.ErrValidation, exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
