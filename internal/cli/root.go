// Package cli implements the cutscene command-line tool with Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cutscene",
	Short: "Run and inspect cutscene scripts",
	Long: `cutscene drives scripted scenes headlessly at a fixed frame rate.
It can export scheduler metrics and record every task lifecycle event
to a SQLite journal for later inspection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
