package fibonacci

import (
	"context"
	"errors"
	"math/big"
	"math/bits"
)

// ErrInvalidModulus is returned by FastDoublingMod for a nil or
// non-positive modulus.
var ErrInvalidModulus = errors.New("fibonacci: modulus must be positive")

// FastDoublingMod returns F(n) mod m. Every intermediate value is reduced,
// so memory stays O(log m) whatever n is; this is what the last-digits mode
// relies on.
func FastDoublingMod(n uint64, m *big.Int) (*big.Int, error) {
	return FastDoublingModContext(context.Background(), n, m)
}

// FastDoublingModContext is FastDoublingMod polling ctx once per bit of n.
func FastDoublingModContext(ctx context.Context, n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if n == 0 {
		return big.NewInt(0), nil
	}

	fk := big.NewInt(0)
	fk1 := big.NewInt(1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// F(2k) = F(k) * (2*F(k+1) - F(k)) mod m; Mod keeps the factor
		// non-negative for a positive m.
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mod(t1, m)
		t1.Mul(t1, fk)
		t1.Mod(t1, m)

		// F(2k+1) = F(k+1)² + F(k)² mod m
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)
		t2.Mod(t2, m)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			t1.Mod(t1, m)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}
	return fk, nil
}

// LastDigits returns the k last decimal digits of F(n), zero-padded to k
// characters.
func LastDigits(n uint64, k int) (string, error) {
	return LastDigitsContext(context.Background(), n, k)
}

// LastDigitsContext is LastDigits with cancellation.
func LastDigitsContext(ctx context.Context, n uint64, k int) (string, error) {
	if k <= 0 {
		return "", ErrInvalidModulus
	}
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
	v, err := FastDoublingModContext(ctx, n, mod)
	if err != nil {
		return "", err
	}
	s := v.String()
	if len(s) < k {
		s = zeros(k-len(s)) + s
	}
	return s, nil
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
