package fibonacci

import (
	"context"
	"math/big"
	"testing"
)

// FuzzVariantConsistency checks that the linear and doubling variants agree
// and that the context-aware versions return the same value.
func FuzzVariantConsistency(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(2))
	f.Add(uint64(10))
	f.Add(uint64(92))
	f.Add(uint64(93)) // largest F(n) that fits in uint64
	f.Add(uint64(94))
	f.Add(uint64(1000))
	f.Add(uint64(4097))

	f.Fuzz(func(t *testing.T, n uint64) {
		if n > 20_000 {
			return
		}

		lin := Linear(n)
		dbl := Doubling(n)
		if lin.Cmp(dbl) != 0 {
			t.Fatalf("F(%d): linear and doubling differ", n)
		}

		got, err := DoublingContext(context.Background(), n, nil)
		if err != nil {
			t.Fatalf("DoublingContext(%d): %v", n, err)
		}
		if got.Cmp(dbl) != 0 {
			t.Fatalf("F(%d): DoublingContext differs from Doubling", n)
		}
	})
}

// FuzzFastDoublingMod checks the modular result against the reduced full
// value for arbitrary positive moduli.
func FuzzFastDoublingMod(f *testing.F) {
	f.Add(uint64(0), int64(10))
	f.Add(uint64(100), int64(10000))
	f.Add(uint64(1000), int64(1000000))
	f.Add(uint64(777), int64(1))

	f.Fuzz(func(t *testing.T, n uint64, m int64) {
		if n > 10_000 || m <= 0 {
			return
		}
		mod := big.NewInt(m)
		got, err := FastDoublingMod(n, mod)
		if err != nil {
			t.Fatalf("FastDoublingMod(%d, %d): %v", n, m, err)
		}
		want := new(big.Int).Mod(Doubling(n), mod)
		if got.Cmp(want) != 0 {
			t.Fatalf("FastDoublingMod(%d, %d) = %s, want %s", n, m, got, want)
		}
	})
}
