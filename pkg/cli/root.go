// Package cli implements the mlingest command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "mlingest",
		Short:         "Feature-store ingestion pipeline",
		Long:          "Pulls records from a document store, cleans them, persists a feature-store snapshot, and splits it into train/test partitions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		// Invoking the binary with no subcommand performs one run.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIngestion(cmd, envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file (optional)")

	rootCmd.AddCommand(newRunCmd(&envFile))
	rootCmd.AddCommand(newScheduleCmd(&envFile))
	rootCmd.AddCommand(newRunsCmd(&envFile))
	return rootCmd
}
