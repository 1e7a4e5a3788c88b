package calc

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/fibonacci"
)

func TestParseFunction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Function
		wantErr bool
	}{
		{"ackermann", Ackermann, false},
		{"ACK", Ackermann, false},
		{"fibonacci", Fibonacci, false},
		{" fib ", Fibonacci, false},
		{"factorial", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFunction(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFunction(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFunction(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRequestString(t *testing.T) {
	t.Parallel()
	if got := (Request{Function: Ackermann, M: 2, N: 3}).String(); got != "A(2, 3)" {
		t.Errorf("got %q", got)
	}
	if got := (Request{Function: Fibonacci, M: 9, N: 10}).String(); got != "F(10)" {
		t.Errorf("got %q", got)
	}
}

func TestCalculators_KnownValues(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	tests := []struct {
		req  Request
		want string
	}{
		{Request{Function: Ackermann, M: 0, N: 0}, "1"},
		{Request{Function: Ackermann, M: 1, N: 2}, "4"},
		{Request{Function: Ackermann, M: 2, N: 3}, "9"},
		{Request{Function: Ackermann, M: 3, N: 3}, "61"},
		{Request{Function: Ackermann, M: 4, N: 0}, "13"},
		{Request{Function: Fibonacci, N: 0}, "0"},
		{Request{Function: Fibonacci, N: 1}, "1"},
		{Request{Function: Fibonacci, N: 30}, "832040"},
	}

	for _, tt := range tests {
		for _, c := range factory.GetAll(tt.req.Function) {
			tt, c := tt, c
			t.Run(tt.req.String()+"/"+c.Name(), func(t *testing.T) {
				t.Parallel()
				res, err := c.Calculate(context.Background(), nil, 0, tt.req, Options{})
				if err != nil {
					t.Fatalf("Calculate: %v", err)
				}
				if res.Value.String() != tt.want {
					t.Errorf("%s = %s, want %s", tt.req, res.Value, tt.want)
				}
			})
		}
	}
}

func TestAckermannIterative_ReportsStepsAndDepth(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1024)
	res, err := AckermannIterative{}.Calculate(context.Background(), ch, 3,
		Request{Function: Ackermann, M: 3, N: 5}, Options{CheckEvery: 4})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Value.Int64() != 253 {
		t.Errorf("A(3, 5) = %s, want 253", res.Value)
	}
	if res.Steps == 0 || res.MaxDepth != 5 {
		t.Errorf("Steps = %d, MaxDepth = %d", res.Steps, res.MaxDepth)
	}

	close(ch)
	var n int
	for u := range ch {
		n++
		if u.CalculatorIndex != 3 || u.Determinate() {
			t.Errorf("unexpected update %+v", u)
		}
	}
	if n == 0 {
		t.Error("expected at least one progress update")
	}
}

func TestAckermannIterative_StepLimit(t *testing.T) {
	t.Parallel()
	_, err := AckermannIterative{}.Calculate(context.Background(), nil, 0,
		Request{Function: Ackermann, M: 4, N: 1}, Options{MaxSteps: 100})

	var capErr apperrors.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if capErr.Resource != "steps" || capErr.Limit != 100 {
		t.Errorf("unexpected capacity error %+v", capErr)
	}
}

func TestAckermannRecursive_Budget(t *testing.T) {
	t.Parallel()
	_, err := AckermannRecursive{}.Calculate(context.Background(), nil, 0,
		Request{Function: Ackermann, M: 3, N: 6}, Options{RecursionBudget: 50})

	var capErr apperrors.CapacityError
	if !errors.As(err, &capErr) || capErr.Resource != "calls" {
		t.Fatalf("expected calls CapacityError, got %v", err)
	}
}

func TestFibonacciRecursive_TooLarge(t *testing.T) {
	t.Parallel()
	_, err := FibonacciRecursive{}.Calculate(context.Background(), nil, 0,
		Request{Function: Fibonacci, N: fibonacci.MaxRecursiveN + 1}, Options{})
	if !errors.Is(err, fibonacci.ErrRecursiveTooLarge) {
		t.Fatalf("expected ErrRecursiveTooLarge in chain, got %v", err)
	}
}

func TestCalculators_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		c   Calculator
		req Request
	}{
		{AckermannIterative{}, Request{Function: Ackermann, M: 4, N: 1}},
		{FibonacciLinear{}, Request{Function: Fibonacci, N: 1_000_000}},
		{FibonacciDoubling{}, Request{Function: Fibonacci, N: 1_000_000}},
	}
	for _, tc := range cases {
		_, err := tc.c.Calculate(ctx, nil, 0, tc.req, Options{CheckEvery: 16})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s/%s: expected context.Canceled, got %v", tc.c.Function(), tc.c.Name(), err)
		}
		var calcErr apperrors.CalculationError
		if !errors.As(err, &calcErr) {
			t.Errorf("%s/%s: expected CalculationError wrapper", tc.c.Function(), tc.c.Name())
		}
	}
}

func TestFibonacci_ProgressIsDeterminate(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 64)
	res, err := FibonacciDoubling{}.Calculate(context.Background(), ch, 1, Request{Function: Fibonacci, N: 1000}, Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Steps != 10 {
		t.Errorf("Steps = %d, want 10 (bit length of 1000)", res.Steps)
	}
	close(ch)
	var last ProgressUpdate
	for u := range ch {
		if !u.Determinate() {
			t.Errorf("indeterminate update %+v", u)
		}
		last = u
	}
	if last.Value < 0.999 {
		t.Errorf("last progress = %f, want 1", last.Value)
	}
}

func TestSendProgress_NeverBlocks(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate) // unbuffered, nobody reading
	sendProgress(ch, ProgressUpdate{})
	sendProgress(nil, ProgressUpdate{})
}

func TestCalculatorsAgree(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	for n := uint64(0); n <= 25; n++ {
		var want *big.Int
		for _, c := range factory.GetAll(Fibonacci) {
			res, err := c.Calculate(context.Background(), nil, 0, Request{Function: Fibonacci, N: n}, Options{})
			if err != nil {
				t.Fatalf("%s: %v", c.Name(), err)
			}
			if want == nil {
				want = res.Value
			} else if res.Value.Cmp(want) != 0 {
				t.Errorf("F(%d): %s = %s, want %s", n, c.Name(), res.Value, want)
			}
		}
	}
}
