package calc

import (
	"context"
	"reflect"
	"testing"
)

type stubCalculator struct {
	name string
	fn   Function
}

func (s stubCalculator) Name() string       { return s.name }
func (s stubCalculator) Function() Function { return s.fn }
func (s stubCalculator) Calculate(context.Context, chan<- ProgressUpdate, int, Request, Options) (Result, error) {
	return Result{}, nil
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	if got, want := f.List(Ackermann), []string{"iterative", "recursive"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List(ackermann) = %v, want %v", got, want)
	}

	fib := f.List(Fibonacci)
	for _, name := range []string{"doubling", "linear", "recursive"} {
		if _, err := f.Get(Fibonacci, name); err != nil {
			t.Errorf("Get(fibonacci, %q): %v", name, err)
		}
	}
	if len(fib) < 3 {
		t.Errorf("List(fibonacci) = %v", fib)
	}

	if _, err := f.Get(Ackermann, "linear"); err == nil {
		t.Error("expected error for an algorithm of another function")
	}
}

func TestFactory_AddReplaces(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	f.Add(stubCalculator{name: "a", fn: Ackermann})
	f.Add(stubCalculator{name: "b", fn: Ackermann})
	f.Add(stubCalculator{name: "a", fn: Ackermann})

	all := f.GetAll(Ackermann)
	if len(all) != 2 || all[0].Name() != "a" || all[1].Name() != "b" {
		t.Errorf("GetAll = %v", all)
	}
	if len(f.List(Fibonacci)) != 0 {
		t.Error("expected no fibonacci calculators")
	}
}

func TestFactory_MustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustGet should panic on unknown names")
		}
	}()
	NewFactory().MustGet(Fibonacci, "matrix")
}

func TestFactory_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			if i%2 == 0 {
				f.Add(stubCalculator{name: "stub", fn: Fibonacci})
				return
			}
			_ = f.GetAll(Fibonacci)
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if _, err := f.Get(Fibonacci, "stub"); err != nil {
		t.Error(err)
	}
}
