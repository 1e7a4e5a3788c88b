package ackermann

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// ErrCallBudget is returned by Recursive when the call budget is exhausted.
var ErrCallBudget = errors.New("ackermann: recursive call budget exceeded")

// recursionCheckEvery is the number of calls between two context polls.
const recursionCheckEvery = 1 << 16

// Recursive evaluates A(m, n) by direct transcription of the mathematical
// definition. It is a reference implementation: the number of calls grows
// like the result itself, and the Go stack grows with the recursion depth.
// budget caps the number of calls (zero means unlimited).
func Recursive(ctx context.Context, m, n uint64, budget uint64) (*big.Int, error) {
	r := recursion{ctx: ctx, budget: budget}
	v, err := r.ack(new(big.Int).SetUint64(m), new(big.Int).SetUint64(n))
	if err != nil {
		return nil, err
	}
	return v, nil
}

type recursion struct {
	ctx    context.Context
	budget uint64
	calls  uint64
}

func (r *recursion) ack(m, n *big.Int) (*big.Int, error) {
	r.calls++
	if r.budget > 0 && r.calls > r.budget {
		return nil, fmt.Errorf("%w (%d calls)", ErrCallBudget, r.budget)
	}
	if r.calls%recursionCheckEvery == 0 {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
	}

	if m.Sign() == 0 {
		return new(big.Int).Add(n, one), nil
	}
	mMinus1 := new(big.Int).Sub(m, one)
	if n.Sign() == 0 {
		return r.ack(mMinus1, big.NewInt(1))
	}
	inner, err := r.ack(m, new(big.Int).Sub(n, one))
	if err != nil {
		return nil, err
	}
	return r.ack(mMinus1, inner)
}
