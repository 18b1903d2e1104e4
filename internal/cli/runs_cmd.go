package cli

import (
	"fmt"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect extraction runs",
	}
	cmd.AddCommand(newRunsListCmd(app), newRunsShowCmd(app))
	return cmd
}

func newRunsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List extraction runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Ledger.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No runs yet. Use 'scpsync extract' to create one."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}
}

func newRunsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a run's statistics and replay outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			run, err := app.Ledger.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			results, err := app.Ledger.ReplayResults(ctx, run.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRunDetail(run, results))
			return nil
		},
	}
}
