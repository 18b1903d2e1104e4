package cli

import (
	"fmt"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/cli/formatter"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/service"
	"github.com/spf13/cobra"
)

func newReplayCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay canonical records into the SCP work-log form",
		Long: `Replay canonical records into the SCP work-log form.

Records come from a record file (--file) or a ledger run (--run). With
--dry-run the per-record fill plan is printed and no browser is opened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if err := requireOneOf(fs, "file", "run"); err != nil {
				return err
			}
			req, err := replayRequest(cmd, app)
			if err != nil {
				return err
			}
			req.RecordFile = stringOr(fs, "file", "")
			req.RunID = stringOr(fs, "run", "")

			if dryRun {
				return printPlan(cmd, app, req)
			}
			return runReplay(cmd, app, req)
		},
	}
	cmd.Flags().StringP("file", "f", "", "Record file to replay")
	cmd.Flags().String("run", "", "Ledger run to replay")
	cmd.Flags().String("from", "", "Report range start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Report range end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the fill plan without opening a browser")
	addReplayFlags(cmd)
	return cmd
}

func addReplayFlags(cmd *cobra.Command) {
	cmd.Flags().String("form", "", "YAML file overriding the form's control locators")
	cmd.Flags().Bool("headless", false, "Run the browser without a window")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// replayRequest builds the form, credentials and timing from flags and
// configuration. The record source is left to the caller.
func replayRequest(cmd *cobra.Command, app *App) (service.ReplayRequest, error) {
	fs := cmd.Flags()
	rc := app.Config.Replay

	form := replay.DefaultFormSpec()
	if path := stringOr(fs, "form", rc.FormSpecPath); path != "" {
		loaded, err := replay.LoadFormSpec(path)
		if err != nil {
			return service.ReplayRequest{}, err
		}
		form = loaded
	}

	from := stringOr(fs, "from", "")
	to := stringOr(fs, "to", "")
	for _, d := range []string{from, to} {
		if err := validateOptionalDate(d); err != nil {
			return service.ReplayRequest{}, fmt.Errorf("invalid date %q: %w", d, err)
		}
	}

	return service.ReplayRequest{
		From: from,
		To:   to,
		Form: form,
		Credentials: replay.Credentials{
			URL:      rc.URL,
			Username: rc.Username,
			Password: rc.Password,
		},
		Config: replay.Config{
			ControlTimeout: rc.ControlTimeout,
			Settle:         rc.Settle,
		},
	}, nil
}

func printPlan(cmd *cobra.Command, app *App, req service.ReplayRequest) error {
	plan, err := app.Replay.Plan(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(plan.Range, plan.Records))
	return nil
}

func runReplay(cmd *cobra.Command, app *App, req service.ReplayRequest) error {
	fs := cmd.Flags()
	if !boolOr(fs, "yes", false) && app.interactive() {
		proceed := false
		if err := confirmForm("Replay records into "+req.Credentials.URL+"?", &proceed).Run(); err != nil {
			return err
		}
		if !proceed {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Replay cancelled."))
			return nil
		}
	}
	if app.NewSession == nil {
		return fmt.Errorf("no browser session available")
	}

	session := app.NewSession(boolOr(fs, "headless", app.Config.Replay.Headless))
	result, err := app.Replay.Replay(cmd.Context(), req, session)
	if result != nil && result.Report != nil {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReplayReport(result.Range, result.Report))
	}
	return err
}
