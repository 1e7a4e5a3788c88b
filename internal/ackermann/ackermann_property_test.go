package ackermann

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestClosedForms_PropertyBased verifies the first three rows of the table:
//
//	A(0,n) = n+1, A(1,n) = n+2, A(2,n) = 2n+3
func TestClosedForms_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("A(0,n) = n+1", prop.ForAll(
		func(n uint64) bool {
			return Compute(0, n).Cmp(new(big.Int).SetUint64(n+1)) == 0
		},
		gen.UInt64Range(0, 1<<40),
	))
	properties.Property("A(1,n) = n+2", prop.ForAll(
		func(n uint64) bool {
			return Compute(1, n).Cmp(new(big.Int).SetUint64(n+2)) == 0
		},
		gen.UInt64Range(0, 1<<40),
	))
	properties.Property("A(2,n) = 2n+3", prop.ForAll(
		func(n uint64) bool {
			return Compute(2, n).Cmp(new(big.Int).SetUint64(2*n+3)) == 0
		},
		gen.UInt64Range(0, 1<<40),
	))

	properties.TestingRun(t)
}

// TestRecurrence_PropertyBased verifies the defining recurrence
//
//	A(m, n+1) = A(m-1, A(m, n))
//
// for m = 1..3, evaluating the right-hand side through ComputeBig so that the
// inner result is fed back as an arbitrary-precision argument.
func TestRecurrence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("A(m,n+1) = A(m-1, A(m,n))", prop.ForAll(
		func(m, n uint64) bool {
			inner := Compute(m, n)
			rhs, err := ComputeBig(new(big.Int).SetUint64(m-1), inner)
			if err != nil {
				return false
			}
			return Compute(m, n+1).Cmp(rhs) == 0
		},
		gen.UInt64Range(1, 3),
		gen.UInt64Range(0, 64),
	))

	properties.TestingRun(t)
}
