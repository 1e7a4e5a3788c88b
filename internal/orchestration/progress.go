package orchestration

import (
	"time"

	"github.com/agbru/trampcalc/internal/calc"
	"github.com/agbru/trampcalc/internal/format"
)

// ProgressAggregator folds the updates of several calculators into one
// display state. Fraction updates feed an ETA estimate; step updates, which
// have no known total, are kept per calculator. Both the CLI and the TUI
// use it.
type ProgressAggregator struct {
	state          *format.ProgressWithETA
	numCalculators int
	steps          []uint64
	depths         []int
}

// NewProgressAggregator returns nil when numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:          format.NewProgressWithETA(numCalculators),
		numCalculators: numCalculators,
		steps:          make([]uint64, numCalculators),
		depths:         make([]int, numCalculators),
	}
}

// AggregatedProgress is the display state after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	// Determinate is false for step-counting calculators.
	Determinate bool
	// TotalSteps sums the latest step counts of all calculators.
	TotalSteps uint64
	// MaxDepth is the deepest stack currently reported.
	MaxDepth int
}

// Update folds u into the aggregate.
func (a *ProgressAggregator) Update(u calc.ProgressUpdate) AggregatedProgress {
	ap := AggregatedProgress{CalculatorIndex: u.CalculatorIndex, Value: u.Value, Determinate: u.Determinate()}
	if u.Determinate() {
		ap.AverageProgress, ap.ETA = a.state.UpdateWithETA(u.CalculatorIndex, u.Value)
	} else {
		if u.CalculatorIndex >= 0 && u.CalculatorIndex < a.numCalculators {
			a.steps[u.CalculatorIndex] = u.Steps
			a.depths[u.CalculatorIndex] = u.Depth
		}
		ap.AverageProgress = a.state.CalculateAverage()
	}
	ap.TotalSteps, ap.MaxDepth = a.Steps()
	return ap
}

// Steps returns the summed step count and the maximum depth reported so far.
func (a *ProgressAggregator) Steps() (uint64, int) {
	var total uint64
	var depth int
	for i, s := range a.steps {
		total += s
		if a.depths[i] > depth {
			depth = a.depths[i]
		}
	}
	return total, depth
}

func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

func (a *ProgressAggregator) NumCalculators() int { return a.numCalculators }

func (a *ProgressAggregator) IsMultiCalculator() bool { return a.numCalculators > 1 }

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan calc.ProgressUpdate) {
	for range progressChan {
	}
}
