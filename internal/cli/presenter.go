package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/trampcalc/internal/calc"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/format"
	"github.com/agbru/trampcalc/internal/orchestration"
	"github.com/agbru/trampcalc/internal/ui"
)

// CLIProgressReporter displays progress with DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter renders results as colored terminal text.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per algorithm. Padding is computed
// on the visible text so color sequences do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	headers := []string{"Algorithm", "Duration", "Steps"}
	widths := make([]int, len(headers))
	rows := make([][]string, len(results))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for i, res := range results {
		steps := "-"
		if res.Err == nil && res.Steps > 0 {
			steps = format.FormatUint(res.Steps)
		}
		rows[i] = []string{res.Name, durationCell(res.Duration), steps}
		for j, cell := range rows[i] {
			if n := len([]rune(cell)); n > widths[j] {
				widths[j] = n
			}
		}
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-len(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	colors := []func() string{ui.ColorBlue, ui.ColorYellow, ui.ColorCyan}
	for i, res := range results {
		for j, cell := range rows[i] {
			fmt.Fprintf(out, "%s%s%s%s   ", colors[j](), cell, ui.ColorReset(), padRight("", widths[j]-len([]rune(cell))))
		}
		if res.Err != nil {
			fmt.Fprintf(out, "%s❌ Failure (%v)%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s✅ Success%s\n", ui.ColorGreen(), ui.ColorReset())
		}
	}
}

func durationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider exposes the active theme to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
