package cli

import (
	"fmt"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/cli/formatter"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
	"github.com/spf13/cobra"
)

func newRecordsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Query canonical records held by the run ledger",
	}
	cmd.AddCommand(newRecordsListCmd(app))
	return cmd
}

func newRecordsListCmd(app *App) *cobra.Command {
	var filter repository.WorkLogFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := app.Ledger.FindRecords(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No records found."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecordList(logs))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.RunID, "run", "", "Only records from this run")
	cmd.Flags().IntVar(&filter.OP, "op", 0, "Only records for this order number")
	cmd.Flags().StringVar(&filter.Date, "date", "", "Only records on this date (YY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&filter.Operator, "operator", "", "Operator name contains")
	cmd.Flags().StringVar(&filter.Team, "team", "", "Only records for this team")
	return cmd
}
