package commands

import (
	"github.com/spf13/cobra"

	"github.com/verdane/esgpulse/pkg/config"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "esgpulse",
	Short: "ESG materiality reconciliation and scoring pipeline",
	Long: `esgpulse merges double- and single-materiality survey results into
one reconciled disclosure score table, projects it onto the materiality
matrix and serves the results over HTTP.

Usage:
  go run ./cmd/esgpulse [command]

Examples:
  go run ./cmd/esgpulse api
  go run ./cmd/esgpulse score --survey srv-2025-01
  go run ./cmd/esgpulse sync
  go run ./cmd/esgpulse scheduler`,
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// applyGlobalFlags folds the persistent flags into the loaded config.
// Every subcommand calls this right after config.Load.
func applyGlobalFlags(cfg *config.Config) {
	if verbose {
		cfg.LogLevel = "debug"
	}
}
