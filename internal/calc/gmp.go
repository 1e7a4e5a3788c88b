//go:build gmp

package calc

import (
	"context"
	"time"

	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/fibonacci"
)

func init() {
	Register(FibonacciGMP{})
}

// FibonacciGMP is fast doubling on libgmp integers.
type FibonacciGMP struct{}

func (FibonacciGMP) Name() string       { return "gmp" }
func (FibonacciGMP) Function() Function { return Fibonacci }

func (FibonacciGMP) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, index int, req Request, _ Options) (Result, error) {
	start := time.Now()
	v, err := fibonacci.DoublingGMP(ctx, req.N)
	if err != nil {
		return Result{}, apperrors.CalculationError{Cause: err}
	}
	sendProgress(progressChan, ProgressUpdate{CalculatorIndex: index, Value: 1})
	return Result{Value: v, Duration: time.Since(start)}, nil
}
