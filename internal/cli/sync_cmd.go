package cli

import (
	"fmt"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Extract a workbook and replay the new run in one step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ereq, err := extractRequest(cmd, app)
			if err != nil {
				return err
			}
			// Validate the replay side before spending an extraction on it.
			rreq, err := replayRequest(cmd, app)
			if err != nil {
				return err
			}

			result, err := runExtract(cmd, app, ereq)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatExtraction(result.Run, result.Records))

			rreq.RunID = result.Run.ID
			return runReplay(cmd, app, rreq)
		},
	}
	addExtractFlags(cmd)
	addReplayFlags(cmd)
	return cmd
}
