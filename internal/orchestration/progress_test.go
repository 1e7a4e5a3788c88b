package orchestration

import (
	"testing"

	"github.com/agbru/trampcalc/internal/calc"
)

func TestNewProgressAggregator(t *testing.T) {
	tests := []struct {
		n       int
		wantNil bool
		multi   bool
	}{
		{3, false, true},
		{1, false, false},
		{0, true, false},
		{-1, true, false},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.n)
		if (agg == nil) != tt.wantNil {
			t.Errorf("NewProgressAggregator(%d) nil = %v, want %v", tt.n, agg == nil, tt.wantNil)
			continue
		}
		if agg == nil {
			continue
		}
		if agg.NumCalculators() != tt.n {
			t.Errorf("NumCalculators() = %d, want %d", agg.NumCalculators(), tt.n)
		}
		if agg.IsMultiCalculator() != tt.multi {
			t.Errorf("IsMultiCalculator() = %v, want %v", agg.IsMultiCalculator(), tt.multi)
		}
	}
}

func TestProgressAggregator_Fractions(t *testing.T) {
	agg := NewProgressAggregator(2)

	ap := agg.Update(calc.ProgressUpdate{CalculatorIndex: 0, Value: 0.5})
	if ap.CalculatorIndex != 0 || ap.Value != 0.5 || !ap.Determinate {
		t.Errorf("unexpected aggregate %+v", ap)
	}
	if ap.AverageProgress != 0.25 {
		t.Errorf("expected AverageProgress=0.25, got %f", ap.AverageProgress)
	}

	ap = agg.Update(calc.ProgressUpdate{CalculatorIndex: 1, Value: 0.5})
	if ap.AverageProgress != 0.5 {
		t.Errorf("expected AverageProgress=0.5, got %f", ap.AverageProgress)
	}
	if agg.GetETA() < 0 {
		t.Errorf("ETA must not be negative, got %v", agg.GetETA())
	}
}

func TestProgressAggregator_Steps(t *testing.T) {
	agg := NewProgressAggregator(2)

	agg.Update(calc.ProgressUpdate{CalculatorIndex: 0, Value: -1, Steps: 100, Depth: 4})
	ap := agg.Update(calc.ProgressUpdate{CalculatorIndex: 1, Value: -1, Steps: 50, Depth: 9})
	if ap.Determinate {
		t.Error("step updates must not be determinate")
	}
	if ap.TotalSteps != 150 || ap.MaxDepth != 9 {
		t.Errorf("TotalSteps = %d, MaxDepth = %d; want 150, 9", ap.TotalSteps, ap.MaxDepth)
	}
	if ap.AverageProgress != 0 {
		t.Errorf("step updates must not move the fraction, got %f", ap.AverageProgress)
	}

	// a later update replaces, not adds
	ap = agg.Update(calc.ProgressUpdate{CalculatorIndex: 0, Value: -1, Steps: 300, Depth: 2})
	if ap.TotalSteps != 350 {
		t.Errorf("TotalSteps = %d, want 350", ap.TotalSteps)
	}

	// out-of-range indices are ignored
	agg.Update(calc.ProgressUpdate{CalculatorIndex: 7, Value: -1, Steps: 1})
	if total, _ := agg.Steps(); total != 350 {
		t.Errorf("out-of-range update changed total to %d", total)
	}
}

func TestProgressAggregator_InitialState(t *testing.T) {
	agg := NewProgressAggregator(1)
	if agg.CalculateAverage() != 0 || agg.GetETA() != 0 {
		t.Error("expected zero average and ETA before any update")
	}
}

func TestDrainChannel(t *testing.T) {
	ch := make(chan calc.ProgressUpdate, 3)
	ch <- calc.ProgressUpdate{Value: 0.1}
	ch <- calc.ProgressUpdate{Value: 0.2}
	ch <- calc.ProgressUpdate{Value: -1, Steps: 8}
	close(ch)
	DrainChannel(ch)

	empty := make(chan calc.ProgressUpdate)
	close(empty)
	DrainChannel(empty)
}
