package calc

import (
	"context"
	"errors"
	"time"

	"github.com/agbru/trampcalc/internal/ackermann"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/trampoline"
)

// AckermannIterative runs the trampoline with an explicit call stack.
type AckermannIterative struct{}

func (AckermannIterative) Name() string       { return "iterative" }
func (AckermannIterative) Function() Function { return Ackermann }

func (AckermannIterative) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, index int, req Request, opts Options) (Result, error) {
	res, err := ackermann.ComputeContext(ctx, req.M, req.N, ackermann.Options{
		MaxSteps:   opts.MaxSteps,
		CheckEvery: opts.CheckEvery,
		OnProgress: func(p ackermann.Progress) {
			sendProgress(progressChan, ProgressUpdate{CalculatorIndex: index, Value: -1, Steps: p.Steps, Depth: p.Depth})
		},
	})
	if err != nil {
		if errors.Is(err, trampoline.ErrStepLimit) {
			return Result{}, apperrors.CapacityError{Resource: "steps", Limit: opts.MaxSteps, Cause: err}
		}
		return Result{}, apperrors.CalculationError{Cause: err}
	}
	return Result{
		Value:    res.Value,
		Steps:    res.Stats.Steps,
		MaxDepth: res.MaxDepth,
		Duration: res.Stats.Duration,
	}, nil
}

// AckermannRecursive evaluates the textbook definition with native
// recursion, bounded by Options.RecursionBudget.
type AckermannRecursive struct{}

func (AckermannRecursive) Name() string       { return "recursive" }
func (AckermannRecursive) Function() Function { return Ackermann }

func (AckermannRecursive) Calculate(ctx context.Context, _ chan<- ProgressUpdate, _ int, req Request, opts Options) (Result, error) {
	start := time.Now()
	v, err := ackermann.Recursive(ctx, req.M, req.N, opts.RecursionBudget)
	if err != nil {
		if errors.Is(err, ackermann.ErrCallBudget) {
			return Result{}, apperrors.CapacityError{Resource: "calls", Limit: opts.RecursionBudget, Cause: err}
		}
		return Result{}, apperrors.CalculationError{Cause: err}
	}
	return Result{Value: v, Duration: time.Since(start)}, nil
}
