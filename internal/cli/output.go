// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions write to the filesystem.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/trampcalc/internal/format"
	"github.com/agbru/trampcalc/internal/metrics"
	"github.com/agbru/trampcalc/internal/orchestration"
	"github.com/agbru/trampcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result to; empty disables it.
	OutputFile string
	Quiet      bool
	orchestration.PresentationOptions
}

// WriteResultToFile writes res with a commented header to cfg.OutputFile,
// creating parent directories as needed.
func WriteResultToFile(res orchestration.CalculationResult, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if res.Result == nil {
		return fmt.Errorf("no result to write for %s", res.Request)
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	value := res.Result.String()
	fmt.Fprintf(file, "# trampcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Function: %s\n", res.Request.Function)
	fmt.Fprintf(file, "# Algorithm: %s\n", res.Name)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	if res.Steps > 0 {
		fmt.Fprintf(file, "# Steps: %d\n", res.Steps)
	}
	fmt.Fprintf(file, "# Digits: %d\n", len(value))
	fmt.Fprintf(file, "\n%s =\n%s\n", res.Request, value)

	return file.Close()
}

// FormatQuietResult is the bare decimal value, for scripting.
func FormatQuietResult(res orchestration.CalculationResult) string {
	return res.Result.String()
}

func DisplayQuietResult(out io.Writer, res orchestration.CalculationResult) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResult prints the summary of a successful calculation: timing,
// digit count, optional details and, with ShowValue, the value itself,
// truncated above TruncationLimit digits unless Verbose is set.
func DisplayResult(res orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	value := res.Result.String()

	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "%s%s%s computed by %s%s%s in %s%s%s.\n",
		ui.ColorMagenta(), res.Request, ui.ColorReset(),
		ui.ColorGreen(), res.Name, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Number of digits: %s%s%s\n", ui.ColorCyan(), format.FormatUint(uint64(len(value))), ui.ColorReset())

	if opts.Details {
		DisplayDetails(res, metrics.NewMemoryCollector().Snapshot(), out)
	}

	if opts.ShowValue {
		fmt.Fprintf(out, "\nCalculated value:\n")
		if !opts.Verbose && len(value) > TruncationLimit {
			fmt.Fprintf(out, "%s = %s (truncated)\n", res.Request, format.Truncate(value, DisplayEdges))
			fmt.Fprintf(out, "Tip: use %s-v%s to print the full value.\n", ui.ColorYellow(), ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s = %s\n", res.Request, format.FormatNumberString(value))
		}
	}
}

// DisplayDetails prints the detailed analysis panel.
func DisplayDetails(res orchestration.CalculationResult, mem metrics.MemorySnapshot, out io.Writer) {
	lines := []string{
		ui.KeyValue("Calculation time", res.Duration.String()),
		ui.KeyValue("Result binary size", format.FormatUint(uint64(res.Result.BitLen()))+" bits"),
	}
	if res.Steps > 0 {
		lines = append(lines, ui.KeyValue("Steps", format.FormatUint(res.Steps)))
	}
	if res.MaxDepth > 0 {
		lines = append(lines, ui.KeyValue("Max stack depth", format.FormatUint(uint64(res.MaxDepth))))
	}
	lines = append(lines,
		ui.KeyValue("Heap in use", format.FormatBytes(mem.HeapAlloc)),
		ui.KeyValue("Total allocated", format.FormatBytes(mem.TotalAlloc)),
		ui.KeyValue("GC cycles", fmt.Sprintf("%d", mem.NumGC)),
	)
	if mem.PeakRSS > 0 {
		lines = append(lines, ui.KeyValue("Peak RSS", format.FormatBytes(mem.PeakRSS)))
	}
	fmt.Fprintf(out, "\n%s\n", ui.Panel("Detailed result analysis", lines, 0))
}

// DisplayResultWithConfig displays res in quiet or normal mode and saves it
// when an output file is configured.
func DisplayResultWithConfig(out io.Writer, res orchestration.CalculationResult, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, res)
	} else {
		DisplayResult(res, cfg.PresentationOptions, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteResultToFile(res, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

// DisplayLastDigits prints the k last digits of F(n).
func DisplayLastDigits(out io.Writer, n uint64, digits string, duration time.Duration, quiet bool) {
	if quiet {
		fmt.Fprintln(out, digits)
		return
	}
	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "Last %d digits of %sF(%d)%s computed in %s%s%s:\n",
		len(digits), ui.ColorMagenta(), n, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "...%s\n", digits)
}
