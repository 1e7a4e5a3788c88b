// Package tui is the --tui dashboard: a Bubble Tea program that runs the
// selected calculators and shows their progress, the step rate and the
// result.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/trampcalc/internal/calc"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/format"
	"github.com/agbru/trampcalc/internal/orchestration"
	"github.com/agbru/trampcalc/internal/sysmon"
	"github.com/agbru/trampcalc/internal/ui"
)

const (
	tickInterval  = 500 * time.Millisecond
	rateSamples   = 40
	maxBarWidth   = 60
	valueEdges    = 25
	valueMaxWidth = 100
)

// Session is what the dashboard runs.
type Session struct {
	Calculators  []calc.Calculator
	Request      calc.Request
	Options      calc.Options
	Presentation orchestration.PresentationOptions
	Timeout      time.Duration
	Version      string
}

// Model is the root bubbletea model.
type Model struct {
	keymap  KeyMap
	help    help.Model
	spinner spinner.Model
	bar     progress.Model

	session   Session
	parentCtx context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	ref       *programRef

	generation uint64
	done       bool
	exitCode   int
	startTime  time.Time
	width      int

	progress  ProgressMsg
	rate      *RingBuffer
	lastSteps uint64
	lastTick  time.Time
	sys       sysmon.Stats

	results []orchestration.CalculationResult
	final   *FinalResultMsg
	err     *ErrorMsg
}

func NewModel(parentCtx context.Context, s Session) Model {
	m := Model{
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		session:   s,
		parentCtx: parentCtx,
		ref:       &programRef{},
		rate:      NewRingBuffer(rateSamples),
		exitCode:  apperrors.ExitSuccess,
	}
	m.ctx, m.cancel = m.runContext()
	m.startTime = time.Now()
	m.lastTick = m.startTime
	return m
}

func (m Model) runContext() (context.Context, context.CancelFunc) {
	if m.session.Timeout > 0 {
		return context.WithTimeout(m.parentCtx, m.session.Timeout)
	}
	return context.WithCancel(m.parentCtx)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.session, m.generation),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-30, 10), maxBarWidth)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Generation == m.generation {
			m.progress = msg
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		now := time.Time(msg)
		if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
			delta := float64(0)
			if m.progress.TotalSteps > m.lastSteps {
				delta = float64(m.progress.TotalSteps - m.lastSteps)
			}
			m.rate.Push(delta / dt)
		}
		m.lastSteps = m.progress.TotalSteps
		m.lastTick = now
		return m, tea.Batch(sampleSysStatsCmd(m.ctx), tickCmd())

	case SysStatsMsg:
		m.sys = sysmon.Stats(msg)
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation == m.generation {
			m.results = msg.Results
		}
		return m, nil

	case FinalResultMsg:
		if msg.Generation == m.generation {
			m.final = &msg
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.err = &msg
		}
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = m.runContext()
		m.done = false
		m.exitCode = apperrors.ExitSuccess
		m.progress = ProgressMsg{}
		m.rate.Reset()
		m.lastSteps = 0
		m.startTime = time.Now()
		m.lastTick = m.startTime
		m.results, m.final, m.err = nil, nil, nil
		return m, tea.Batch(tickCmd(), startCalculationCmd(m.ref, m.ctx, m.session, m.generation))

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	sections := []string{m.headerView(), ""}
	if !m.done {
		sections = append(sections, m.progressView())
	}
	if len(m.results) > 0 {
		sections = append(sections, m.comparisonView())
	}
	if m.final != nil {
		sections = append(sections, m.resultView())
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("Calculation failed after %s: %v",
			format.FormatExecutionDuration(m.err.Duration), m.err.Err)))
	}
	sections = append(sections, "", m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	elapsed := time.Since(m.startTime).Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%s %s  %s  %s",
		titleStyle.Render("trampcalc"),
		dimStyle.Render(m.session.Version),
		accentStyle.Render(m.session.Request.String()),
		dimStyle.Render(fmt.Sprintf("elapsed %s  cpu %.0f%%  mem %.0f%%", elapsed, m.sys.CPUPercent, m.sys.MemPercent)))
}

func (m Model) progressView() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Computing ")
	switch {
	case m.progress.Determinate:
		b.WriteString(m.bar.ViewAs(m.progress.AverageProgress))
		b.WriteString(dimStyle.Render(" ETA " + format.FormatETA(m.progress.ETA)))
	case m.progress.TotalSteps > 0:
		b.WriteString(format.FormatSteps(m.progress.TotalSteps, m.progress.MaxDepth))
	}
	if m.rate.Len() > 0 && !m.progress.Determinate {
		fmt.Fprintf(&b, "\n  rate %s %s steps/s",
			warningStyle.Render(RenderSparkline(m.rate.Slice())),
			format.FormatUint(uint64(m.rate.Last())))
	}
	return b.String()
}

func (m Model) comparisonView() string {
	lines := make([]string, 0, len(m.results))
	for _, r := range m.results {
		status := successStyle.Render("ok")
		if r.Err != nil {
			status = errorStyle.Render(r.Err.Error())
		}
		lines = append(lines, fmt.Sprintf("%-10s %10s  %s", r.Name, format.FormatExecutionDuration(r.Duration), status))
	}
	return ui.Panel("Comparison", lines, 0)
}

func (m Model) resultView() string {
	r := m.final.Result
	value := r.Result.String()
	lines := []string{
		ui.KeyValue("algorithm", r.Name),
		ui.KeyValue("duration", format.FormatExecutionDuration(r.Duration)),
		ui.KeyValue("digits", format.FormatUint(uint64(len(value)))),
	}
	if r.Steps > 0 {
		lines = append(lines, ui.KeyValue("steps", format.FormatUint(r.Steps)))
	}
	if r.MaxDepth > 0 {
		lines = append(lines, ui.KeyValue("max depth", format.FormatUint(uint64(r.MaxDepth))))
	}
	if !m.final.Options.Verbose && len(value) > valueMaxWidth {
		value = format.Truncate(value, valueEdges)
	}
	lines = append(lines, ui.KeyValue("value", value))
	return ui.Panel(r.Request.String(), lines, 0)
}

// Run starts the program and returns the exit code of the last run.
func Run(ctx context.Context, s Session) int {
	initTUIStyles()

	model := NewModel(ctx, s)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		model.cancel()
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

func startCalculationCmd(ref *programRef, ctx context.Context, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, gen: gen}
		presenter := &TUIResultPresenter{ref: ref, gen: gen}
		results := orchestration.ExecuteCalculations(ctx, s.Calculators, s.Request, s.Options, reporter, io.Discard)
		code := orchestration.AnalyzeComparisonResults(results, s.Presentation, presenter, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg { return SysStatsMsg(sysmon.Sample(ctx)) }
}
