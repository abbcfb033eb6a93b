package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one ingestion run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIngestion(cmd, *envFile)
		},
	}
}

// runIngestion executes one end-to-end ingestion run and prints the
// artifact paths.
func runIngestion(cmd *cobra.Command, envFile string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx, envFile)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	artifact, err := a.stage.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "feature store: %s\n", artifact.FeatureStorePath)
	fmt.Fprintf(cmd.OutOrStdout(), "train split:   %s\n", artifact.TrainFilePath)
	fmt.Fprintf(cmd.OutOrStdout(), "test split:    %s\n", artifact.TestFilePath)
	return nil
}
