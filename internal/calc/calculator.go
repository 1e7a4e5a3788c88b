package calc

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Function identifies the mathematical function a Calculator evaluates.
type Function string

const (
	Ackermann Function = "ackermann"
	Fibonacci Function = "fibonacci"
)

// Functions lists the supported functions.
var Functions = []Function{Ackermann, Fibonacci}

// ParseFunction maps a user-supplied name to a Function. "ack" and "fib"
// are accepted as short forms.
func ParseFunction(name string) (Function, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ackermann", "ack":
		return Ackermann, nil
	case "fibonacci", "fib":
		return Fibonacci, nil
	}
	return "", fmt.Errorf("unknown function %q (expected ackermann or fibonacci)", name)
}

// Request is one evaluation. M is ignored by Fibonacci.
type Request struct {
	Function Function
	M        uint64
	N        uint64
}

func (r Request) String() string {
	if r.Function == Ackermann {
		return fmt.Sprintf("A(%d, %d)", r.M, r.N)
	}
	return fmt.Sprintf("F(%d)", r.N)
}

// Options bounds a calculation. Zero values mean unbounded, except
// CheckEvery which falls back to the engine default.
type Options struct {
	// MaxSteps caps trampoline transitions for the iterative Ackermann.
	MaxSteps uint64
	// CheckEvery is the number of steps between cancellation polls and
	// progress updates.
	CheckEvery uint64
	// RecursionBudget caps calls of the recursive reference algorithms.
	RecursionBudget uint64
}

// ProgressUpdate is sent by a running calculator. Ackermann has no known
// total, so Value is negative and Steps and Depth carry the information.
type ProgressUpdate struct {
	CalculatorIndex int
	Value           float64
	Steps           uint64
	Depth           int
}

// Determinate reports whether Value is a meaningful fraction.
func (u ProgressUpdate) Determinate() bool { return u.Value >= 0 }

// Result is a successful calculation.
type Result struct {
	Value *big.Int
	// Steps counts engine transitions or loop iterations; zero when the
	// algorithm does not track them.
	Steps uint64
	// MaxDepth is the deepest deferred call stack reached, Ackermann only.
	MaxDepth int
	Duration time.Duration
}

// Calculator evaluates one function with one algorithm.
type Calculator interface {
	// Name is the algorithm name, unique within a Function.
	Name() string
	Function() Function
	// Calculate runs req. Progress is sent to progressChan without blocking;
	// progressChan may be nil.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, index int, req Request, opts Options) (Result, error)
}

// sendProgress delivers u unless the channel is full or nil.
func sendProgress(ch chan<- ProgressUpdate, u ProgressUpdate) {
	if ch == nil {
		return
	}
	select {
	case ch <- u:
	default:
	}
}
