// Package ackermann computes the Ackermann function over arbitrary-precision
// integers without native recursion. The doubly recursive definition
//
//	A(0, n) = n + 1
//	A(m, 0) = A(m-1, 1)
//	A(m, n) = A(m-1, A(m, n-1))
//
// is driven by a trampoline.Machine whose state carries two registers and an
// explicit CallStack of deferred outer calls. Closed forms for m in {0, 1, 2}
// end each descent early, so only m >= 3 ever pushes a frame.
package ackermann

import (
	"context"
	"errors"
	"math/big"

	"github.com/agbru/trampcalc/internal/trampoline"
)

// ErrNegativeArgument is returned when m or n is negative.
var ErrNegativeArgument = errors.New("ackermann: arguments must be non-negative")

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// State is one configuration of the iterative evaluation.
type State struct {
	// Number1 is the first argument of the call being evaluated.
	Number1 *big.Int
	// Number2 is the second argument, and the result once the stack drains.
	Number2 *big.Int
	// Stack holds the deferred outer calls. It is shared by every state of a
	// single computation.
	Stack *CallStack
	// Continue is true while the evaluation keeps descending into the same
	// call. When false, the next step resumes the deferred call on top of
	// Stack.
	Continue bool
}

// Seed builds the initial state for A(m, n). It allocates a fresh stack, so
// every computation owns its own.
func Seed(m, n *big.Int) State {
	return State{
		Number1: new(big.Int).Set(m),
		Number2: new(big.Int).Set(n),
		Stack:   NewCallStack(new(big.Int).Set(m)),
	}
}

// Step performs one transition. Number1 and Number2 of s are never modified;
// the returned state carries freshly allocated values where they change.
func Step(s State) State {
	number1 := s.Number1
	if !s.Continue {
		if top, ok := s.Stack.Pop(); ok {
			number1 = top
		}
	}

	switch {
	case number1.Sign() == 0:
		// A(0, n) = n + 1
		return State{Number1: number1, Number2: new(big.Int).Add(s.Number2, one), Stack: s.Stack}
	case number1.Cmp(one) == 0:
		// A(1, n) = n + 2
		return State{Number1: number1, Number2: new(big.Int).Add(s.Number2, two), Stack: s.Stack}
	case number1.Cmp(two) == 0:
		// A(2, n) = 2n + 3
		n2 := new(big.Int).Lsh(s.Number2, 1)
		return State{Number1: number1, Number2: n2.Add(n2, three), Stack: s.Stack}
	case s.Number2.Sign() == 0:
		// A(m, 0) = A(m-1, 1)
		return State{
			Number1:  new(big.Int).Sub(number1, one),
			Number2:  big.NewInt(1),
			Stack:    s.Stack,
			Continue: true,
		}
	default:
		// A(m, n) = A(m-1, A(m, n-1)): defer the outer call, evaluate the inner one.
		s.Stack.Push(new(big.Int).Sub(number1, one))
		return State{
			Number1:  number1,
			Number2:  new(big.Int).Sub(s.Number2, one),
			Stack:    s.Stack,
			Continue: true,
		}
	}
}

// Done reports whether s is terminal: no deferred call is left and no
// descent is in progress.
func Done(s State) bool {
	return s.Stack.Empty() && !s.Continue
}

// Extract returns the result held by a terminal state.
func Extract(s State) *big.Int {
	return s.Number2
}

// Machine returns the trampoline instantiation computing A(m, n).
func Machine() trampoline.Machine[*big.Int, *big.Int, State, *big.Int] {
	return trampoline.Machine[*big.Int, *big.Int, State, *big.Int]{
		Seed:    Seed,
		Step:    Step,
		Done:    Done,
		Extract: Extract,
	}
}

var machine = Machine()

// Compute returns A(m, n). It runs until completion; callers exposing it to
// untrusted input must bound m and n, or use ComputeContext.
func Compute(m, n uint64) *big.Int {
	return machine.Run(new(big.Int).SetUint64(m), new(big.Int).SetUint64(n))
}

// ComputeBig returns A(m, n) for arbitrary-precision arguments.
func ComputeBig(m, n *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || n.Sign() < 0 {
		return nil, ErrNegativeArgument
	}
	return machine.Run(m, n), nil
}

// Progress is a snapshot of a running computation.
type Progress struct {
	Steps uint64
	Depth int
}

// Options bounds ComputeContext.
type Options struct {
	MaxSteps   uint64
	CheckEvery uint64
	OnProgress func(Progress)
}

// Result is the outcome of ComputeContext.
type Result struct {
	Value    *big.Int
	Stats    trampoline.Stats
	MaxDepth int
}

// ComputeContext returns A(m, n), polling ctx and enforcing opts.MaxSteps.
// Stats and MaxDepth are filled in even when an error is returned.
func ComputeContext(ctx context.Context, m, n uint64, opts Options) (Result, error) {
	var stack *CallStack
	mc := Machine()
	mc.Seed = func(m, n *big.Int) State {
		s := Seed(m, n)
		stack = s.Stack
		return s
	}

	lim := trampoline.Limits{MaxSteps: opts.MaxSteps, CheckEvery: opts.CheckEvery}
	if opts.OnProgress != nil {
		lim.OnCheck = func(st trampoline.Stats) {
			opts.OnProgress(Progress{Steps: st.Steps, Depth: stack.Len()})
		}
	}

	v, stats, err := mc.RunContext(ctx, new(big.Int).SetUint64(m), new(big.Int).SetUint64(n), lim)
	res := Result{Value: v, Stats: stats}
	if stack != nil {
		res.MaxDepth = stack.MaxDepth()
	}
	return res, err
}
