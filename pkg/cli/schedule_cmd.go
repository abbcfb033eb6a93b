package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mlingest/internal/pipeline"
)

func newScheduleCmd(envFile *string) *cobra.Command {
	var cronSpec string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run ingestion on a recurring cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := buildApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			sched := pipeline.NewScheduler(a.stage, a.logger)
			if err := sched.Schedule(cronSpec); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				a.logger.Info("signal received, shutting down", "signal", sig.String())
			case <-ctx.Done():
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cronSpec, "cron", "", "cron expression (e.g. \"0 3 * * *\")")
	_ = cmd.MarkFlagRequired("cron")
	return cmd
}
