package cli

import (
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/config"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Config config.Config

	Extract service.ExtractService
	Replay  service.ReplayService
	Ledger  service.LedgerService

	// ExtractUnavailable explains a nil Extract, typically a missing LLM
	// API key.
	ExtractUnavailable error

	// NewSession returns the browser session a replay drives.
	NewSession func(headless bool) replay.Session

	// Wire builds the services once the logger exists. Tests leave it nil
	// and set the services directly.
	Wire func(app *App) error

	// NewLogger overrides the zap logger construction.
	NewLogger func(verbose bool) (*zap.Logger, error)

	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool

	Logger *zap.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "scpsync" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "scpsync",
		Short:         "Turn timesheet workbooks into work-log records and replay them into SCP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			newLogger := app.NewLogger
			if newLogger == nil {
				newLogger = buildLogger
			}
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			app.Logger = logger
			if app.Wire != nil {
				return app.Wire(app)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log at debug level")

	root.AddCommand(
		newExtractCmd(app),
		newReplayCmd(app),
		newSyncCmd(app),
		newRecordsCmd(app),
		newRunsCmd(app),
	)

	return root
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
