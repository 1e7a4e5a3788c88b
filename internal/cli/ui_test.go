package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/trampcalc/internal/calc"
	"github.com/agbru/trampcalc/internal/cli/mocks"
	"github.com/agbru/trampcalc/internal/orchestration"
)

// Tests in this file replace the package-level newSpinner and must not run
// in parallel.

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	mockS.EXPECT().Start().Times(1)
	mockS.EXPECT().Stop().Times(1)
	mockS.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()

	original := newSpinner
	t.Cleanup(func() { newSpinner = original })
	newSpinner = func(...spinner.Option) Spinner { return mockS }

	progressChan := make(chan calc.ProgressUpdate)
	go func() {
		progressChan <- calc.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	var buf bytes.Buffer
	DisplayProgress(&wg, progressChan, 1, &buf)
	wg.Wait()

	if !strings.Contains(buf.String(), "100.0%") {
		t.Errorf("expected a final full bar, got %q", buf.String())
	}
}

func TestDisplayProgress_StepUpdates(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	mockS.EXPECT().Start()
	mockS.EXPECT().Stop()

	var mu sync.Mutex
	var suffixes []string
	mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
		mu.Lock()
		suffixes = append(suffixes, s)
		mu.Unlock()
	}).AnyTimes()

	original := newSpinner
	t.Cleanup(func() { newSpinner = original })
	newSpinner = func(...spinner.Option) Spinner { return mockS }

	progressChan := make(chan calc.ProgressUpdate, 1)
	progressChan <- calc.ProgressUpdate{Value: -1, Steps: 1234567, Depth: 42}

	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, io.Discard)
	time.Sleep(3 * ProgressRefreshRate / 2)
	close(progressChan)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	found := false
	for _, s := range suffixes {
		if strings.Contains(s, "1,234,567 steps, stack depth 42") {
			found = true
		}
	}
	if !found {
		t.Errorf("no suffix reported the step count: %q", suffixes)
	}
}

func TestDisplayProgress_ZeroCalculators(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan calc.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestProgressSuffix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		p     orchestration.AggregatedProgress
		multi bool
		want  string
	}{
		{"indeterminate without steps", orchestration.AggregatedProgress{}, false, " Computing..."},
		{"steps", orchestration.AggregatedProgress{TotalSteps: 10, MaxDepth: 3}, false, "10 steps, stack depth 3"},
		{"bar", orchestration.AggregatedProgress{Determinate: true, AverageProgress: 0.5}, false, "50.0%"},
		{"multi", orchestration.AggregatedProgress{Determinate: true, AverageProgress: 0.5}, true, "(average)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := progressSuffix(tt.p, tt.multi); !strings.Contains(got, tt.want) {
				t.Errorf("progressSuffix() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))}
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}
