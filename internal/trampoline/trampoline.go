// Package trampoline drives recursive computations as an explicit loop over
// state values, so that deep recursion never grows the native call stack.
//
// A Machine is described by four functions: Seed builds the initial state
// from two inputs, Step produces the next state, Done tells when a state is
// terminal and Extract turns the terminal state into the output. Run applies
// Step until Done holds.
package trampoline

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultCheckEvery is the number of steps between two context polls in
// RunContext when Limits.CheckEvery is zero.
const DefaultCheckEvery = 1 << 14

// ErrStepLimit is returned by RunContext when the machine has not reached a
// terminal state within Limits.MaxSteps steps.
var ErrStepLimit = errors.New("trampoline: step limit exceeded")

// Machine is a state-iteration engine. M and N are the two input types, I is
// the intermediate state and O the output.
//
// Step may mutate resources referenced by the state (an explicit stack, for
// instance) as long as each transition only depends on the state it receives.
// Such resources must be created by Seed so that two runs never share them.
type Machine[M, N, I, O any] struct {
	Seed    func(M, N) I
	Step    func(I) I
	Done    func(I) bool
	Extract func(I) O
}

// Limits bounds a RunContext call.
type Limits struct {
	// MaxSteps is the maximum number of Step applications. Zero means no limit.
	MaxSteps uint64
	// CheckEvery is the number of steps between context polls and OnCheck
	// calls. Zero selects DefaultCheckEvery.
	CheckEvery uint64
	// OnCheck, when set, is called with the running statistics at every
	// check point. It runs on the computing goroutine and must be cheap.
	OnCheck func(Stats)
}

// Stats describes a finished or interrupted run.
type Stats struct {
	Steps    uint64
	Duration time.Duration
}

// Run computes the output for (m, n). It returns Extract(s_k) for the first
// state s_k, starting from Seed(m, n), for which Done is true.
//
// Run never returns if the machine never reaches a terminal state.
func (mc Machine[M, N, I, O]) Run(m M, n N) O {
	s := mc.Seed(m, n)
	for !mc.Done(s) {
		s = mc.Step(s)
	}
	return mc.Extract(s)
}

// Func returns Run as a plain function value.
func (mc Machine[M, N, I, O]) Func() func(M, N) O {
	return mc.Run
}

// RunContext is Run with cancellation and a step budget. The context is
// polled every lim.CheckEvery steps; on cancellation the context error is
// returned, and ErrStepLimit is returned once lim.MaxSteps is exceeded.
func (mc Machine[M, N, I, O]) RunContext(ctx context.Context, m M, n N, lim Limits) (O, Stats, error) {
	var zero O
	every := lim.CheckEvery
	if every == 0 {
		every = DefaultCheckEvery
	}

	start := time.Now()
	var stats Stats
	s := mc.Seed(m, n)
	for !mc.Done(s) {
		if lim.MaxSteps > 0 && stats.Steps >= lim.MaxSteps {
			stats.Duration = time.Since(start)
			return zero, stats, fmt.Errorf("%w (%d steps)", ErrStepLimit, lim.MaxSteps)
		}
		if stats.Steps%every == 0 {
			if err := ctx.Err(); err != nil {
				stats.Duration = time.Since(start)
				return zero, stats, err
			}
			if lim.OnCheck != nil {
				stats.Duration = time.Since(start)
				lim.OnCheck(stats)
			}
		}
		s = mc.Step(s)
		stats.Steps++
	}
	stats.Duration = time.Since(start)
	return mc.Extract(s), stats, nil
}
