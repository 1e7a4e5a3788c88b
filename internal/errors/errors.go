package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3   // two algorithms disagreed
	ExitErrorConfig   = 4   // invalid flags, environment or request
	ExitErrorCanceled = 130 // SIGINT convention
)

// ConfigError is an invalid user configuration. The program cannot proceed.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError returns a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError marks a failure inside an algorithm and keeps its cause.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError names the operation that ran out of time and the configured
// limit. Cause is usually context.DeadlineExceeded.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
	Cause     error
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Limit)
}

func (e TimeoutError) Unwrap() error { return e.Cause }

// AsTimeout turns a deadline error into a TimeoutError for operation.
// Other errors, including existing TimeoutErrors, are returned unchanged.
func AsTimeout(err error, operation string, limit time.Duration) error {
	var timeoutErr TimeoutError
	if !errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr) {
		return err
	}
	return TimeoutError{Operation: operation, Limit: limit, Cause: err}
}

// ValidationError reports an input field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// CapacityError is returned when a computation would exceed a configured
// resource bound: a step budget, a recursion budget or an argument cap.
type CapacityError struct {
	// Resource names the exhausted bound, e.g. "steps" or "m".
	Resource string
	// Limit is the configured value of that bound.
	Limit uint64
	// Cause is the underlying error, if any.
	Cause error
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: %s limit is %d", e.Resource, e.Limit)
}

func (e CapacityError) Unwrap() error { return e.Cause }

// WrapError prefixes err with a formatted message, keeping it in the chain.
// It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies the escape sequences HandleCalculationError uses.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var (
		cfgErr      ConfigError
		validErr    ValidationError
		timeoutErr  TimeoutError
		capacityErr CapacityError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &validErr), errors.As(err, &capacityErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError prints a one-line diagnosis of err to out and
// returns the matching exit code. duration is how long the calculation ran
// before failing; zero omits it.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	after := ""
	if duration > 0 {
		after = fmt.Sprintf(" after %s", duration)
	}

	code := ExitCode(err)
	var capacityErr CapacityError
	switch {
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "%sCalculation timed out%s: %v%s\n", red, after, err, reset)
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sCalculation canceled%s.%s\n", yellow, after, reset)
	case errors.As(err, &capacityErr):
		fmt.Fprintf(out, "%sCalculation refused%s: %v%s\n", yellow, after, err, reset)
	default:
		fmt.Fprintf(out, "%sCalculation failed%s: %v%s\n", red, after, err, reset)
	}
	return code
}
