package tui

import (
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/trampcalc/internal/calc"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/orchestration"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recordingSender) all() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func TestTUIProgressReporter_ForwardsProgress(t *testing.T) {
	t.Parallel()
	rec := &recordingSender{}
	ref := &programRef{}
	ref.SetProgram(rec)
	reporter := &TUIProgressReporter{ref: ref, gen: 3}

	ch := make(chan calc.ProgressUpdate, 4)
	ch <- calc.ProgressUpdate{Value: -1, Steps: 100, Depth: 4}
	ch <- calc.ProgressUpdate{Value: -1, Steps: 250, Depth: 9}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()

	msgs := rec.all()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	last, ok := msgs[1].(ProgressMsg)
	if !ok || last.TotalSteps != 250 || last.MaxDepth != 9 || last.Determinate || last.Generation != 3 {
		t.Errorf("unexpected progress message %+v", msgs[1])
	}
	if done, ok := msgs[2].(ProgressDoneMsg); !ok || done.Generation != 3 {
		t.Errorf("expected ProgressDoneMsg, got %T", msgs[2])
	}
}

func TestTUIProgressReporter_NilProgram(t *testing.T) {
	t.Parallel()
	reporter := &TUIProgressReporter{ref: &programRef{}}
	ch := make(chan calc.ProgressUpdate, 2)
	ch <- calc.ProgressUpdate{Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()
}

func TestTUIProgressReporter_ZeroCalculators(t *testing.T) {
	t.Parallel()
	rec := &recordingSender{}
	ref := &programRef{}
	ref.SetProgram(rec)
	reporter := &TUIProgressReporter{ref: ref}

	ch := make(chan calc.ProgressUpdate, 1)
	ch <- calc.ProgressUpdate{Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
	if n := len(rec.all()); n != 0 {
		t.Errorf("expected no messages, got %d", n)
	}
}

func TestTUIResultPresenter(t *testing.T) {
	t.Parallel()
	rec := &recordingSender{}
	ref := &programRef{}
	ref.SetProgram(rec)
	p := &TUIResultPresenter{ref: ref, gen: 1}

	res := orchestration.CalculationResult{Name: "iterative", Result: big.NewInt(61)}
	p.PresentComparisonTable([]orchestration.CalculationResult{res}, nil)
	p.PresentResult(res, orchestration.PresentationOptions{Verbose: true}, nil)
	code := p.HandleError(apperrors.CapacityError{Resource: "steps", Limit: 1}, time.Second, nil)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}

	msgs := rec.all()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if m, ok := msgs[1].(FinalResultMsg); !ok || !m.Options.Verbose || m.Generation != 1 {
		t.Errorf("unexpected final message %+v", msgs[1])
	}
	if m, ok := msgs[2].(ErrorMsg); !ok || !errors.As(m.Err, new(apperrors.CapacityError)) {
		t.Errorf("unexpected error message %+v", msgs[2])
	}
}
