package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/trampcalc/internal/calc"
)

// CalculationResult is the outcome of one calculator on one request.
type CalculationResult struct {
	// Name is the algorithm name, e.g. "iterative" or "doubling".
	Name    string
	Request calc.Request
	// Result is nil when Err is set.
	Result   *big.Int
	Steps    uint64
	MaxDepth int
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how the final result is shown.
type PresentationOptions struct {
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressReporter displays progress updates until progressChan is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer)

func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel silently. Used in quiet mode.
type NullProgressReporter struct{}

func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders comparison tables and final results.
type ResultPresenter interface {
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports a failed calculation and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// CalculatorFactory is the subset of calc.Factory used for selection.
type CalculatorFactory interface {
	List(fn calc.Function) []string
	Get(fn calc.Function, name string) (calc.Calculator, error)
}
