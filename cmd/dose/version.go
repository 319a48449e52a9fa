// ABOUTME: Version command printing the build version.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dose version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dose %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
