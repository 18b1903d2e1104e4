package cli

import (
	"fmt"
	"path/filepath"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/cli/formatter"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/service"
	"github.com/spf13/cobra"
)

func newExtractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract canonical work-log records from a timesheet workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := extractRequest(cmd, app)
			if err != nil {
				return err
			}
			result, err := runExtract(cmd, app, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatExtraction(result.Run, result.Records))
			return nil
		},
	}
	addExtractFlags(cmd)
	return cmd
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Timesheet workbook (.xlsx)")
	cmd.Flags().String("team", "", "Team recorded on every work log")
	cmd.Flags().String("out", "", "Directory for the record file")
}

// extractRequest resolves flags against the configured defaults, prompting
// for the workbook when none was given and a terminal is attached.
func extractRequest(cmd *cobra.Command, app *App) (service.ExtractRequest, error) {
	fs := cmd.Flags()
	req := service.ExtractRequest{
		SourcePath: stringOr(fs, "file", app.Config.Import.Source),
		Team:       stringOr(fs, "team", app.Config.Import.Team),
		OutDir:     stringOr(fs, "out", app.Config.Import.OutputDir),
	}

	if !fs.Changed("file") && app.interactive() {
		if err := sourceForm(&req.SourcePath, &req.Team).Run(); err != nil {
			return req, err
		}
	}
	if req.OutDir == "" {
		req.OutDir = filepath.Dir(req.SourcePath)
	}
	return req, nil
}

func runExtract(cmd *cobra.Command, app *App, req service.ExtractRequest) (*service.ExtractResult, error) {
	if app.Extract == nil {
		if app.ExtractUnavailable != nil {
			return nil, fmt.Errorf("extraction unavailable: %w", app.ExtractUnavailable)
		}
		return nil, fmt.Errorf("extraction unavailable")
	}

	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Extracting "+filepath.Base(req.SourcePath)+"...")
		defer stop()
	}
	return app.Extract.Extract(cmd.Context(), req)
}
