// Package app wires configuration, logging, tracing and the three run
// modes: a single command-line calculation, the dashboard and the HTTP
// server.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/trampcalc/internal/calc"
	"github.com/agbru/trampcalc/internal/config"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/logging"
	"github.com/agbru/trampcalc/internal/orchestration"
	"github.com/agbru/trampcalc/internal/server"
	"github.com/agbru/trampcalc/internal/telemetry"
	"github.com/agbru/trampcalc/internal/tui"
	"github.com/agbru/trampcalc/internal/ui"
)

// Application is one configured invocation of trampcalc.
type Application struct {
	Config    config.AppConfig
	Factory   *calc.Factory
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

func WithFactory(f *calc.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses args, whose first element is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = calc.NewDefaultFactory()
	}

	programName := "trampcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgorithms(app.Factory))
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		logger, err := logging.NewLeveledLogger(errWriter, "trampcalc", cfg.LogLevel)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid log level: %v", err)
		}
		app.Logger = logger
	}
	return app, nil
}

func availableAlgorithms(f *calc.Factory) config.Algorithms {
	algos := make(config.Algorithms, len(calc.Functions))
	for _, fn := range calc.Functions {
		algos[string(fn)] = f.List(fn)
	}
	return algos
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)

	provider, err := telemetry.Setup(ctx, telemetry.Config{
		Exporter: a.Config.TraceExporter,
		Endpoint: a.Config.OTLPEndpoint,
		Insecure: true,
	}, Version)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("trace provider shutdown failed", err)
		}
	}()

	switch {
	case a.Config.Serve:
		return a.runServer(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	default:
		return a.runCalculate(ctx, out)
	}
}

func (a *Application) request() calc.Request {
	return calc.Request{Function: calc.Function(a.Config.Function), M: a.Config.M, N: a.Config.N}
}

func (a *Application) calcOptions() calc.Options {
	return calc.Options{MaxSteps: a.Config.MaxSteps, RecursionBudget: a.Config.RecursionBudget}
}

func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(a.Logger), server.WithVersion(Version))
	if err := srv.Start(ctx); err != nil {
		a.Logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runTUI(ctx context.Context) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := a.request()
	calculators, err := orchestration.GetCalculatorsToRun(req.Function, a.Config.Algo, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return tui.Run(ctx, tui.Session{
		Calculators: calculators,
		Request:     req,
		Options:     a.calcOptions(),
		Presentation: orchestration.PresentationOptions{
			Verbose:   a.Config.Verbose,
			Details:   a.Config.Details,
			ShowValue: a.Config.ShowValue,
		},
		Timeout: a.Config.Timeout,
		Version: Version,
	})
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
