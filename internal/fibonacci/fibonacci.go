// Package fibonacci computes Fibonacci numbers over arbitrary-precision
// integers with two iterative algorithms: a linear two-register walk and the
// logarithmic fast doubling method.
package fibonacci

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// ErrGMPUnavailable is returned by DoublingGMP in builds without the gmp tag.
var ErrGMPUnavailable = errors.New("fibonacci: built without GMP support (use -tags=gmp)")

// Variant selects the algorithm used by Compute.
type Variant int

const (
	// VariantLinear walks the sequence forward, O(n) additions.
	VariantLinear Variant = iota
	// VariantDoubling uses the fast doubling identities, O(log n) steps.
	VariantDoubling
)

// String returns the variant's canonical name.
func (v Variant) String() string {
	switch v {
	case VariantLinear:
		return "linear"
	case VariantDoubling:
		return "doubling"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant maps a name to a Variant. The names used by the original web
// form ("tail_recursive_1" for doubling, "tail_recursive_2" for linear) are
// accepted as aliases.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "tail_recursive_2":
		return VariantLinear, nil
	case "doubling", "fast", "tail_recursive_1":
		return VariantDoubling, nil
	}
	return 0, fmt.Errorf("unknown fibonacci variant %q", name)
}

// Compute returns F(n) using the given variant.
func Compute(n uint64, v Variant) *big.Int {
	if v == VariantLinear {
		return Linear(n)
	}
	return Doubling(n)
}

// Linear returns F(n) by forward iteration over two registers.
func Linear(n uint64) *big.Int {
	if n < 2 {
		return new(big.Int).SetUint64(n)
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(1); i < n; i++ {
		// (a, b) = (b, a+b), reusing a's storage for the sum
		a.Add(a, b)
		a, b = b, a
	}
	return b
}

// Doubling returns F(n) with the fast doubling method. It scans the bits of
// n from the most significant one, keeping the pair (F(k), F(k+1)):
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k)² + F(k+1)²
//
// and advancing to (F(2k+1), F(2k+2)) when the bit is set.
func Doubling(n uint64) *big.Int {
	if n == 0 {
		return big.NewInt(0)
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		doublingStep(fk, fk1, t1, t2)
		if (n>>uint(i))&1 == 1 {
			// (F(k), F(k+1)) <- (F(k+1), F(k)+F(k+1))
			t1.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}
	return fk
}

// doublingStep replaces (fk, fk1) = (F(k), F(k+1)) by (F(2k), F(2k+1)),
// using t1 and t2 as scratch.
func doublingStep(fk, fk1, t1, t2 *big.Int) {
	// t1 = F(k) * (2*F(k+1) - F(k))
	t1.Lsh(fk1, 1)
	t1.Sub(t1, fk)
	t1.Mul(t1, fk)

	// t2 = F(k)² + F(k+1)²
	t2.Mul(fk1, fk1)
	fk.Mul(fk, fk)
	t2.Add(t2, fk)

	fk.Set(t1)
	fk1.Set(t2)
}
