package fibonacci

import (
	"errors"
	"math/big"
)

// MaxRecursiveN is the largest index Recursive accepts. The naive definition
// makes F(n) calls, roughly 2.3 million for n = 30.
const MaxRecursiveN = 35

// ErrRecursiveTooLarge is returned by Recursive above MaxRecursiveN.
var ErrRecursiveTooLarge = errors.New("fibonacci: index too large for the recursive definition")

// Recursive returns F(n) from the textbook definition
// F(n) = F(n-1) + F(n-2). It exists as a reference oracle.
func Recursive(n uint64) (*big.Int, error) {
	if n > MaxRecursiveN {
		return nil, ErrRecursiveTooLarge
	}
	return new(big.Int).SetUint64(naive(n)), nil
}

func naive(n uint64) uint64 {
	if n <= 1 {
		return n
	}
	return naive(n-1) + naive(n-2)
}
