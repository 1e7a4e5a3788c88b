package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSetAny reports whether any of names was set on the command line.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// envOverride maps one environment variable (without EnvPrefix) to the
// flags it stands in for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func uintOverride(dst func(*AppConfig) *uint64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

func stringOverride(dst func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *dst(c) = v }
}

var envOverrides = []envOverride{
	{"FUNCTION", []string{"function", "f"}, stringOverride(func(c *AppConfig) *string { return &c.Function })},
	{"M", []string{"m"}, uintOverride(func(c *AppConfig) *uint64 { return &c.M })},
	{"N", []string{"n"}, uintOverride(func(c *AppConfig) *uint64 { return &c.N })},
	{"ALGO", []string{"algo"}, stringOverride(func(c *AppConfig) *string { return &c.Algo })},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"MAX_M", []string{"max-m"}, uintOverride(func(c *AppConfig) *uint64 { return &c.MaxM })},
	{"MAX_N_ACK", []string{"max-n-ack"}, uintOverride(func(c *AppConfig) *uint64 { return &c.MaxNAck })},
	{"MAX_N_FIB", []string{"max-n-fib"}, uintOverride(func(c *AppConfig) *uint64 { return &c.MaxNFib })},
	{"MAX_STEPS", []string{"max-steps"}, uintOverride(func(c *AppConfig) *uint64 { return &c.MaxSteps })},
	{"RECURSION_BUDGET", []string{"recursion-budget"}, uintOverride(func(c *AppConfig) *uint64 { return &c.RecursionBudget })},
	{"LAST_DIGITS", []string{"last-digits"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.LastDigits = parsed
		}
	}},
	{"OUTPUT", []string{"output", "o"}, stringOverride(func(c *AppConfig) *string { return &c.OutputFile })},
	{"ADDR", []string{"addr"}, stringOverride(func(c *AppConfig) *string { return &c.Addr })},
	{"LOG_LEVEL", []string{"log-level"}, stringOverride(func(c *AppConfig) *string { return &c.LogLevel })},
	{"TRACE_EXPORTER", []string{"trace-exporter"}, stringOverride(func(c *AppConfig) *string { return &c.TraceExporter })},
	{"OTLP_ENDPOINT", []string{"otlp-endpoint"}, stringOverride(func(c *AppConfig) *string { return &c.OTLPEndpoint })},

	{"CALCULATE", []string{"calculate", "c"}, boolOverride(func(c *AppConfig) *bool { return &c.ShowValue })},
	{"VERBOSE", []string{"verbose", "v"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"details", "d"}, boolOverride(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
	{"SERVE", []string{"serve"}, boolOverride(func(c *AppConfig) *bool { return &c.Serve })},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively, and
// returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides fills every field whose flags were not given on the
// command line from the matching TRAMPCALC_* variable.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(cfg, val)
		}
	}
}
