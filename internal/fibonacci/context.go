package fibonacci

import (
	"context"
	"math/big"
	"math/bits"
)

// linearCheckEvery is the number of iterations between two context polls in
// LinearContext.
const linearCheckEvery = 1 << 12

// ProgressFunc receives the fraction of work done, between 0 and 1.
type ProgressFunc func(progress float64)

// LinearContext is Linear with cancellation and progress reporting.
// report may be nil.
func LinearContext(ctx context.Context, n uint64, report ProgressFunc) (*big.Int, error) {
	if n < 2 {
		return new(big.Int).SetUint64(n), nil
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(1); i < n; i++ {
		if i%linearCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if report != nil {
				report(float64(i) / float64(n))
			}
		}
		a.Add(a, b)
		a, b = b, a
	}
	if report != nil {
		report(1)
	}
	return b, nil
}

// DoublingContext is Doubling with cancellation and progress reporting.
// Progress is weighted by 4^i per bit, since operand sizes double at each
// step and multiplication dominates.
func DoublingContext(ctx context.Context, n uint64, report ProgressFunc) (*big.Int, error) {
	if n == 0 {
		return big.NewInt(0), nil
	}

	fk := big.NewInt(0)
	fk1 := big.NewInt(1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	numBits := bits.Len64(n)
	total := totalWork(numBits)
	var done float64
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doublingStep(fk, fk1, t1, t2)
		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(t1)
		}
		if report != nil {
			done += workOfStep(numBits, i)
			report(done / total)
		}
	}
	return fk, nil
}

// workOfStep is the relative cost of the step processing bit i.
func workOfStep(numBits, i int) float64 {
	w := 1.0
	for j := 0; j < numBits-1-i; j++ {
		w *= 4
	}
	return w
}

func totalWork(numBits int) float64 {
	var total float64
	for i := numBits - 1; i >= 0; i-- {
		total += workOfStep(numBits, i)
	}
	return total
}
