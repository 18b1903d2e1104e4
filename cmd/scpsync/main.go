package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/browser"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/cli"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/config"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/db"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/extraction"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/llm"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	runRepo := repository.NewSQLiteRunRepo(database)
	workLogRepo := repository.NewSQLiteWorkLogRepo(database)
	resultRepo := repository.NewSQLiteReplayResultRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Config: cfg,
		Ledger: service.NewLedgerService(runRepo, workLogRepo, resultRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Services that log are built once the root command has a logger.
	app.Wire = func(app *cli.App) error {
		observer := service.NewLogUseCaseObserver(app.Logger)
		app.Replay = service.NewReplayService(runRepo, workLogRepo, uow, app.Logger, observer)

		rc := cfg.Replay
		app.NewSession = func(headless bool) replay.Session {
			return browser.New(browser.Config{
				ControlURL: rc.ControlURL,
				Bin:        rc.BrowserBin,
				Headless:   headless,
			}, app.Logger.Named("browser"))
		}

		// Without an API key only extraction is unavailable.
		llmCfg := llm.LoadConfig()
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(app.Logger.Named("llm"))
		}
		client, err := llm.NewClient(ctx, llmCfg, llmObserver)
		if err != nil {
			app.ExtractUnavailable = err
			return nil
		}
		extractor := extraction.NewLLMExtractor(client, app.Logger.Named("extraction"))
		app.Extract = service.NewExtractService(extractor, uow, app.Logger, observer)
		return nil
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
