package calc

import (
	"context"
	"errors"
	"math/big"
	"math/bits"
	"time"

	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/fibonacci"
)

// FibonacciLinear walks the sequence with two registers.
type FibonacciLinear struct{}

func (FibonacciLinear) Name() string       { return "linear" }
func (FibonacciLinear) Function() Function { return Fibonacci }

func (FibonacciLinear) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, index int, req Request, _ Options) (Result, error) {
	steps := uint64(0)
	if req.N > 1 {
		steps = req.N - 1
	}
	return runFibonacci(ctx, progressChan, index, steps, func(report fibonacci.ProgressFunc) (*big.Int, error) {
		return fibonacci.LinearContext(ctx, req.N, report)
	})
}

// FibonacciDoubling uses the fast doubling identities.
type FibonacciDoubling struct{}

func (FibonacciDoubling) Name() string       { return "doubling" }
func (FibonacciDoubling) Function() Function { return Fibonacci }

func (FibonacciDoubling) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, index int, req Request, _ Options) (Result, error) {
	return runFibonacci(ctx, progressChan, index, uint64(bits.Len64(req.N)), func(report fibonacci.ProgressFunc) (*big.Int, error) {
		return fibonacci.DoublingContext(ctx, req.N, report)
	})
}

// FibonacciRecursive is the naive definition, limited to small indices.
type FibonacciRecursive struct{}

func (FibonacciRecursive) Name() string       { return "recursive" }
func (FibonacciRecursive) Function() Function { return Fibonacci }

func (FibonacciRecursive) Calculate(_ context.Context, _ chan<- ProgressUpdate, _ int, req Request, _ Options) (Result, error) {
	start := time.Now()
	v, err := fibonacci.Recursive(req.N)
	if err != nil {
		if errors.Is(err, fibonacci.ErrRecursiveTooLarge) {
			return Result{}, apperrors.CapacityError{Resource: "n", Limit: fibonacci.MaxRecursiveN, Cause: err}
		}
		return Result{}, apperrors.CalculationError{Cause: err}
	}
	return Result{Value: v, Duration: time.Since(start)}, nil
}

func runFibonacci(ctx context.Context, progressChan chan<- ProgressUpdate, index int, steps uint64, run func(fibonacci.ProgressFunc) (*big.Int, error)) (Result, error) {
	start := time.Now()
	v, err := run(func(p float64) {
		sendProgress(progressChan, ProgressUpdate{CalculatorIndex: index, Value: p})
	})
	if err != nil {
		return Result{}, apperrors.CalculationError{Cause: err}
	}
	return Result{Value: v, Steps: steps, Duration: time.Since(start)}, nil
}
