// Package cli wires the cobra command tree for the simulation binary:
// run, validate, and version, the "minimal CLI surface" spec.md §6
// names, the supplemented report subcommand, plus the config/logging
// flags the teacher's own CLI root exposes globally.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// NewRootCommand builds the root cyclus command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cyclus",
		Short: "cyclus runs a discrete-time nuclear-fuel-cycle simulation",
		Long: `cyclus drives a scenario file through its tick/resolve/tock cycle,
routing messages between regions, institutions, facilities, and markets,
and reports a structured diagnostic on any fatal error.

Examples:
  cyclus run scenario.yaml
  cyclus validate scenario.yaml
  cyclus version`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewReportCommand())

	return rootCmd
}

// Execute runs the root command, exiting per spec.md §6's exit-code
// contract (0 clean, 1 scenario parse error, 2 runtime error).
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
