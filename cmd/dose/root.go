// ABOUTME: Root Cobra command for dose CLI.
// ABOUTME: Handles config, store, and engine lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harperreed/dose/internal/adherence"
	"github.com/harperreed/dose/internal/config"
	"github.com/harperreed/dose/internal/store"
)

var (
	cfg        *config.Config
	records    *store.Records
	engine     *adherence.Engine
	charmStore *store.CharmStore
	log        zerolog.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dose",
	Short: "Personal medication reminder tracker",
	Long: `Dose is a CLI tool for tracking medications and adherence.

WHAT IT DOES:

  Register medications with a daily reminder time, get local reminders
  from the foreground daemon, and record whether each dose was taken,
  skipped, or missed. Unmarked medications roll over to "missed" at
  midnight, and everything feeds lifetime adherence statistics.

QUICK START:

  $ dose add Aspirin 100mg 08:00        # Register a medication
  $ dose list                           # See medications and today's status
  $ dose taken abc12345                 # Mark today's dose taken
  $ dose skip abc12345                  # Mark today's dose skipped
  $ dose upcoming                       # Doses still ahead of now, soonest first
  $ dose stats                          # Lifetime adherence statistics

REMINDERS:

  $ dose remind                         # Run the foreground reminder daemon

  The daemon schedules a daily trigger per medication, fires desktop and
  terminal alerts, rolls unmarked medications to "missed" at midnight,
  and accepts taken/skip/snooze responses on stdin.

MCP INTEGRATION:

  Run 'dose mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Data lives in a local Badger store at ~/.local/share/dose by default.
  Set "backend": "charm" in ~/.config/dose/config.json to sync across
  devices via Charm Cloud (E2E encrypted with your SSH key).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't need the store
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		st, err := cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		if cs, ok := st.(*store.CharmStore); ok {
			charmStore = cs
		}
		records = store.NewRecords(st)
		engine = adherence.New(records, nil, log)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if records != nil {
			return records.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
