//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/trampcalc/internal/calc"
	"github.com/agbru/trampcalc/internal/format"
	"github.com/agbru/trampcalc/internal/orchestration"
)

const (
	// TruncationLimit is the digit count above which a value is shortened
	// on standard output unless --verbose is set.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when
	// truncating.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner and suffix refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text shown after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner until progressChan is closed, then calls
// wg.Done. Fibonacci calculators report a fraction, rendered as a bar with
// an ETA; Ackermann reports a step count and stack depth instead.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" Computing...")
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last orchestration.AggregatedProgress
	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				s.Stop()
				if last.Determinate {
					fmt.Fprintf(out, "%s\n", progressSuffix(orchestration.AggregatedProgress{Determinate: true, AverageProgress: 1}, agg.IsMultiCalculator()))
				}
				return
			}
			last = agg.Update(u)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(last, agg.IsMultiCalculator()))
		}
	}
}

func progressSuffix(p orchestration.AggregatedProgress, multi bool) string {
	label := " Computing..."
	if multi {
		label = " Computing (average)..."
	}
	switch {
	case p.Determinate:
		return fmt.Sprintf("%s %s", label, format.FormatProgressBarWithETA(p.AverageProgress, p.ETA, ProgressBarWidth))
	case p.TotalSteps > 0:
		return fmt.Sprintf("%s %s", label, format.FormatSteps(p.TotalSteps, p.MaxDepth))
	default:
		return label
	}
}
