// Package config parses and validates the command-line configuration.
// Values are resolved in the order: flags, TRAMPCALC_* environment
// variables, defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/trampcalc/internal/errors"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "TRAMPCALC_"

// Defaults.
const (
	DefaultFunction        = "ackermann"
	DefaultAlgo            = "all"
	DefaultTimeout         = 5 * time.Minute
	DefaultMaxM            = 4
	DefaultMaxNAck         = 1 << 16
	DefaultMaxNFib         = 100_000_000
	DefaultMaxSteps        = 1 << 32
	DefaultRecursionBudget = 1 << 26
	DefaultAddr            = ":8080"
	DefaultLogLevel        = "info"
	MaxLastDigits          = 100_000
)

// AppConfig is the fully resolved configuration.
type AppConfig struct {
	Function string
	M        uint64
	N        uint64
	Algo     string
	Timeout  time.Duration

	MaxM            uint64
	MaxNAck         uint64
	MaxNFib         uint64
	MaxSteps        uint64
	RecursionBudget uint64
	LastDigits      int

	ShowValue  bool
	Verbose    bool
	Details    bool
	Quiet      bool
	OutputFile string
	NoColor    bool
	TUI        bool

	Serve         bool
	Addr          string
	LogLevel      string
	TraceExporter string
	OTLPEndpoint  string

	ShowVersion bool
}

// Algorithms lists the algorithm names available per function name.
type Algorithms map[string][]string

// ParseConfig parses args (without the program name) into an AppConfig and
// validates it. Usage and flag errors are written to errWriter; a help
// request returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, algos Algorithms) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Function, "function", DefaultFunction, "Function to evaluate: ackermann or fibonacci.")
	fs.StringVar(&cfg.Function, "f", DefaultFunction, "Shorthand for -function.")
	fs.Uint64Var(&cfg.M, "m", 2, "First Ackermann argument.")
	fs.Uint64Var(&cfg.N, "n", 3, "Second Ackermann argument, or the Fibonacci index.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Algorithm to use, or 'all' to compare (%s).", describeAlgos(algos)))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of a calculation.")
	fs.Uint64Var(&cfg.MaxM, "max-m", DefaultMaxM, "Largest accepted Ackermann m.")
	fs.Uint64Var(&cfg.MaxNAck, "max-n-ack", DefaultMaxNAck, "Largest accepted Ackermann n for m <= 3.")
	fs.Uint64Var(&cfg.MaxNFib, "max-n-fib", DefaultMaxNFib, "Largest accepted Fibonacci index.")
	fs.Uint64Var(&cfg.MaxSteps, "max-steps", DefaultMaxSteps, "Step budget of the iterative Ackermann engine (0 = unlimited).")
	fs.Uint64Var(&cfg.RecursionBudget, "recursion-budget", DefaultRecursionBudget, "Call budget of the recursive algorithms (0 = unlimited).")
	fs.IntVar(&cfg.LastDigits, "last-digits", 0, "Fibonacci only: compute just the last K decimal digits.")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "Print the full value.")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Shorthand for -calculate.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Do not truncate long values.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Show steps, stack depth and memory usage.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for -details.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run the interactive dashboard.")
	fs.BoolVar(&cfg.Serve, "serve", false, "Run the HTTP API instead of a single calculation.")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address of the HTTP API.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn or error.")
	fs.StringVar(&cfg.TraceExporter, "trace-exporter", "none", "Trace exporter: none, stdout or otlp.")
	fs.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", "localhost:4317", "OTLP gRPC collector address.")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)
	cfg.Function = normalizeFunction(cfg.Function)
	cfg.Algo = strings.ToLower(strings.TrimSpace(cfg.Algo))

	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.Validate(algos); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against the available algorithms and
// the capacity bounds.
func (c AppConfig) Validate(algos Algorithms) error {
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.LogLevel)) {
		return apperrors.ValidationError{Field: "log-level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	if !slices.Contains([]string{"none", "stdout", "otlp"}, c.TraceExporter) {
		return apperrors.ValidationError{Field: "trace-exporter", Message: fmt.Sprintf("unknown exporter %q", c.TraceExporter)}
	}
	if c.Serve {
		if c.Addr == "" {
			return apperrors.ValidationError{Field: "addr", Message: "must not be empty"}
		}
		return nil
	}

	names, ok := algos[c.Function]
	if !ok {
		return apperrors.ValidationError{Field: "function", Message: fmt.Sprintf("unknown function %q", c.Function)}
	}
	if c.Algo != "all" && !slices.Contains(names, c.Algo) {
		return apperrors.ValidationError{Field: "algo", Message: fmt.Sprintf("unknown %s algorithm %q (available: %s)", c.Function, c.Algo, strings.Join(names, ", "))}
	}

	if c.LastDigits != 0 {
		if c.Function != "fibonacci" {
			return apperrors.ValidationError{Field: "last-digits", Message: "only applies to fibonacci"}
		}
		if c.LastDigits < 0 || c.LastDigits > MaxLastDigits {
			return apperrors.ValidationError{Field: "last-digits", Message: fmt.Sprintf("must be between 1 and %d", MaxLastDigits)}
		}
		return nil
	}

	switch c.Function {
	case "ackermann":
		return CheckAckermann(c.M, c.N, c.MaxM, c.MaxNAck)
	case "fibonacci":
		if c.N > c.MaxNFib {
			return apperrors.CapacityError{Resource: "n", Limit: c.MaxNFib}
		}
	}
	return nil
}

// CheckAckermann rejects arguments whose evaluation cannot finish. For
// m <= 3 the cost grows with n, bounded by maxN; A(4, n) is only feasible
// for n <= 2 and A(5, n) for n = 0. Beyond that the result has more digits
// than there are atoms in the universe.
func CheckAckermann(m, n, maxM, maxN uint64) error {
	if m > maxM {
		return apperrors.ValidationError{Field: "m", Message: fmt.Sprintf("must be at most %d", maxM)}
	}
	switch {
	case m <= 3:
		if n > maxN {
			return apperrors.CapacityError{Resource: "n", Limit: maxN}
		}
	case m == 4:
		if n > 2 {
			return apperrors.CapacityError{Resource: "n", Limit: 2}
		}
	case m == 5:
		if n > 0 {
			return apperrors.CapacityError{Resource: "n", Limit: 0}
		}
	default:
		return apperrors.CapacityError{Resource: "m", Limit: 5}
	}
	return nil
}

// normalizeFunction lower-cases name and expands the "ack" and "fib" short
// forms.
func normalizeFunction(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "ack":
		return "ackermann"
	case "fib":
		return "fibonacci"
	}
	return name
}

func describeAlgos(algos Algorithms) string {
	parts := make([]string, 0, len(algos))
	for _, fn := range []string{"ackermann", "fibonacci"} {
		if names, ok := algos[fn]; ok {
			parts = append(parts, fn+": "+strings.Join(names, ", "))
		}
	}
	return strings.Join(parts, "; ")
}
