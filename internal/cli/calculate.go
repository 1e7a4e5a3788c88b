package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/trampcalc/internal/calc"
	"github.com/agbru/trampcalc/internal/config"
	"github.com/agbru/trampcalc/internal/ui"
)

// PrintExecutionConfig displays the request, the timeout and the limits in
// effect.
func PrintExecutionConfig(cfg config.AppConfig, req calc.Request, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), req, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if req.Function == calc.Ackermann {
		fmt.Fprintf(out, "Limits: step budget=%s%s%s, recursion budget=%s%s%s.\n",
			ui.ColorCyan(), budget(cfg.MaxSteps), ui.ColorReset(),
			ui.ColorCyan(), budget(cfg.RecursionBudget), ui.ColorReset())
	}
}

func budget(v uint64) string {
	if v == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", v)
}

// PrintExecutionMode announces a single run or a comparison.
func PrintExecutionMode(calculators []calc.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d algorithms", len(calculators))
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
