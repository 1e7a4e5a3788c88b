package tui

import (
	"time"

	"github.com/agbru/trampcalc/internal/orchestration"
	"github.com/agbru/trampcalc/internal/sysmon"
)

// ProgressMsg carries the aggregated progress of the running calculators.
type ProgressMsg struct {
	Generation      uint64
	Determinate     bool
	AverageProgress float64
	ETA             time.Duration
	TotalSteps      uint64
	MaxDepth        int
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{ Generation uint64 }

type ComparisonResultsMsg struct {
	Generation uint64
	Results    []orchestration.CalculationResult
}

type FinalResultMsg struct {
	Generation uint64
	Result     orchestration.CalculationResult
	Options    orchestration.PresentationOptions
}

type ErrorMsg struct {
	Generation uint64
	Err        error
	Duration   time.Duration
}

// TickMsg drives the step rate and system samples.
type TickMsg time.Time

type SysStatsMsg sysmon.Stats

// CalculationCompleteMsg ends a run. Every message of a run carries its
// Generation so that messages from a restarted run are discarded.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}
