//go:build !gmp

package fibonacci

import (
	"context"
	"math/big"
)

// HasGMP reports whether the binary was built with GMP support.
const HasGMP = false

// DoublingGMP is unavailable without the gmp build tag.
func DoublingGMP(context.Context, uint64) (*big.Int, error) {
	return nil, ErrGMPUnavailable
}
