package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRunsCmd(envFile *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent ingestion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := buildApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			runs, err := a.runs.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tCOLLECTION\tROWS\tTRAIN\tTEST\tSTARTED\tERROR")
			for _, r := range runs {
				errMsg := ""
				if r.ErrorMessage != nil {
					errMsg = *r.ErrorMessage
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
					shortID(r.ID), r.Status, r.Collection,
					r.RowsIngested, r.TrainRows, r.TestRows,
					r.StartedAt.Format("2006-01-02 15:04:05"), errMsg)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
