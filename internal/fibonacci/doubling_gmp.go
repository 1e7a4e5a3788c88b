//go:build gmp

// GMP-backed fast doubling, compiled only with -tags=gmp. It requires libgmp
// (libgmp-dev on Debian/Ubuntu, brew install gmp on macOS).

package fibonacci

import (
	"context"
	"math/big"
	"math/bits"

	"github.com/ncw/gmp"
)

// HasGMP reports whether the binary was built with GMP support.
const HasGMP = true

// DoublingGMP is DoublingContext on GMP integers. The cgo call overhead makes
// it slower than math/big for small n; it pays off for very large indices.
func DoublingGMP(ctx context.Context, n uint64) (*big.Int, error) {
	if n == 0 {
		return big.NewInt(0), nil
	}

	a := gmp.NewInt(0)
	b := gmp.NewInt(1)
	t1 := gmp.NewInt(0)
	t2 := gmp.NewInt(0)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// t1 = a * (2b - a)
		t1.MulUint32(b, 2)
		t1.Sub(t1, a)
		t1.Mul(a, t1)
		// t2 = a² + b², using a as scratch once F(2k) is safe in t1
		t2.Mul(a, a)
		a.Mul(b, b)
		t2.Add(t2, a)
		a.Set(t1)
		b.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			a.Set(b)
			b.Set(t1)
		}
	}
	return new(big.Int).SetBytes(a.Bytes()), nil
}
