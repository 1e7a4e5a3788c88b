package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/trampcalc/internal/cli"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/fibonacci"
	"github.com/agbru/trampcalc/internal/logging"
	"github.com/agbru/trampcalc/internal/orchestration"
)

// runCalculate runs the selected calculators on the request, cross-checks
// their results and prints the outcome.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if a.Config.LastDigits > 0 {
		return a.runLastDigits(ctx, out)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	req := a.request()
	calculators, err := orchestration.GetCalculatorsToRun(req.Function, a.Config.Algo, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, req, out)
		cli.PrintExecutionMode(calculators, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	a.Logger.Debug("starting calculation",
		logging.String("request", req.String()),
		logging.Int("calculators", len(calculators)))
	results := orchestration.ExecuteCalculations(ctx, calculators, req, a.calcOptions(), reporter, progressOut)
	for i := range results {
		results[i].Err = apperrors.AsTimeout(results[i].Err, fmt.Sprintf("%s with %s", req, results[i].Name), a.Config.Timeout)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		PresentationOptions: orchestration.PresentationOptions{
			Verbose:   a.Config.Verbose,
			Details:   a.Config.Details,
			ShowValue: a.Config.ShowValue,
		},
	}
	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// runLastDigits prints the last K digits of F(N) by modular fast doubling,
// in memory proportional to K whatever N is.
func (a *Application) runLastDigits(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", a.Config.LastDigits, a.Config.N)
	}

	start := time.Now()
	digits, err := fibonacci.LastDigitsContext(ctx, a.Config.N, a.Config.LastDigits)
	elapsed := time.Since(start)
	if err != nil {
		err = apperrors.AsTimeout(err, fmt.Sprintf("last %d digits of F(%d)", a.Config.LastDigits, a.Config.N), a.Config.Timeout)
		return apperrors.HandleCalculationError(err, elapsed, a.ErrWriter, cli.CLIColorProvider{})
	}

	cli.DisplayLastDigits(out, a.Config.N, digits, elapsed, a.Config.Quiet)
	return apperrors.ExitSuccess
}

// analyzeResultsWithOutput cross-checks the results, presents the fastest
// one and saves it when an output file is configured. Quiet mode prints
// only the value, with failures going to ErrWriter.
func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	var presenter orchestration.ResultPresenter = cli.CLIResultPresenter{}
	var errHandler orchestration.ErrorHandler = cli.CLIResultPresenter{}
	analysisOut := out
	if outputCfg.Quiet {
		q := quietPresenter{out: out, errOut: a.ErrWriter}
		presenter, errHandler, analysisOut = q, q, io.Discard
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, outputCfg.PresentationOptions, presenter, errHandler, analysisOut)
	if exitCode != apperrors.ExitSuccess || outputCfg.OutputFile == "" {
		return exitCode
	}

	best := findBestResult(results)
	if best == nil {
		return exitCode
	}
	if err := cli.WriteResultToFile(*best, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", apperrors.WrapError(err, "saving result to %s", outputCfg.OutputFile))
		return apperrors.ExitErrorGeneric
	}
	if !outputCfg.Quiet {
		fmt.Fprintf(out, "\nResult saved to: %s\n", outputCfg.OutputFile)
	}
	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}

// quietPresenter prints the bare value and sends errors to errOut.
type quietPresenter struct {
	out    io.Writer
	errOut io.Writer
}

func (quietPresenter) PresentComparisonTable([]orchestration.CalculationResult, io.Writer) {}

func (q quietPresenter) PresentResult(result orchestration.CalculationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	cli.DisplayQuietResult(q.out, result)
}

func (q quietPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, q.errOut, cli.CLIColorProvider{})
}
