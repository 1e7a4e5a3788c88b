package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/trampcalc/internal/calc"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/telemetry"
)

// ProgressBufferMultiplier sizes the progress channel per calculator.
const ProgressBufferMultiplier = 5

// AlgoAll selects every registered algorithm of a function.
const AlgoAll = "all"

// GetCalculatorsToRun resolves algo for fn. AlgoAll returns every
// registered algorithm in name order; an unknown name returns an error.
func GetCalculatorsToRun(fn calc.Function, algo string, factory CalculatorFactory) ([]calc.Calculator, error) {
	if algo == AlgoAll {
		names := factory.List(fn)
		calculators := make([]calc.Calculator, 0, len(names))
		for _, name := range names {
			if c, err := factory.Get(fn, name); err == nil {
				calculators = append(calculators, c)
			}
		}
		if len(calculators) == 0 {
			return nil, fmt.Errorf("no %s algorithm registered", fn)
		}
		return calculators, nil
	}
	c, err := factory.Get(fn, algo)
	if err != nil {
		return nil, err
	}
	return []calc.Calculator{c}, nil
}

// ExecuteCalculations runs every calculator on req concurrently and returns
// one result per calculator, in input order. Failures are recorded in the
// result rather than cancelling the others.
func ExecuteCalculations(ctx context.Context, calculators []calc.Calculator, req calc.Request, opts calc.Options, reporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan calc.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, c := range calculators {
		idx, calculator := i, c
		g.Go(func() error {
			results[idx] = runOne(ctx, calculator, progressChan, idx, req, opts)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runOne(ctx context.Context, c calc.Calculator, progressChan chan<- calc.ProgressUpdate, idx int, req calc.Request, opts calc.Options) CalculationResult {
	ctx, span := telemetry.StartCalculationSpan(ctx, string(req.Function), c.Name(), req.M, req.N)
	defer span.End()

	start := time.Now()
	res, err := c.Calculate(ctx, progressChan, idx, req, opts)
	out := CalculationResult{
		Name:     c.Name(),
		Request:  req,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return out
	}
	out.Result = res.Value
	out.Steps = res.Steps
	out.MaxDepth = res.MaxDepth
	telemetry.RecordSuccess(span, telemetry.AttrSteps.Int64(int64(res.Steps)))
	return out
}

// AnalyzeComparisonResults sorts results (successes first, then by
// duration), checks that every successful result agrees, presents them and
// returns the exit code.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstErr error
	var firstErrDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
				firstErrDuration = results[i].Duration
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if firstValid == nil {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		}
		return errHandler.HandleError(firstErr, firstErrDuration, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValid.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree on %s.\n", firstValid.Name, res.Name, res.Request)
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
