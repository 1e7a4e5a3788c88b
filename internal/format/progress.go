package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	// rateSmoothing is the weight of the newest sample in the progress rate
	// moving average.
	rateSmoothing = 0.3
	// maxETA caps estimates made from very slow early rates.
	maxETA = 24 * time.Hour
)

// ProgressState tracks the completion fraction of several concurrent
// calculators. It is not safe for concurrent use.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

func NewProgressState(numCalculators int) *ProgressState {
	if numCalculators < 0 {
		numCalculators = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records the fraction of calculator index, clamped to [0, 1].
// Out-of-range indices are ignored.
func (p *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= p.numCalculators {
		return
	}
	p.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean fraction across calculators.
func (p *ProgressState) CalculateAverage() float64 {
	if p.numCalculators == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.progresses {
		sum += v
	}
	return sum / float64(p.numCalculators)
}

// ProgressWithETA adds a smoothed completion rate to ProgressState.
type ProgressWithETA struct {
	*ProgressState
	numCalculators int
	startTime      time.Time
	lastUpdate     time.Time
	lastProgress   float64
	progressRate   float64 // fraction per second
}

func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numCalculators),
		numCalculators: numCalculators,
		startTime:      now,
		lastUpdate:     now,
	}
}

// UpdateWithETA records an update and returns the new average and estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = rateSmoothing*rate + (1-rateSmoothing)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.GetETA()
}

// GetETA estimates the remaining time from the smoothed rate. It returns 0
// until a rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	secs := remaining / p.progressRate
	if secs > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(secs * float64(time.Second))
}

// Elapsed returns the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// ProgressBar renders a bar of the given length for a fraction in [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	etaText := FormatETA(eta)
	if progress >= 1 {
		etaText = "0s"
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, etaText)
}

// FormatSteps renders the progress of a calculation with no known total.
func FormatSteps(steps uint64, depth int) string {
	return fmt.Sprintf("%s steps, stack depth %s", FormatUint(steps), FormatUint(uint64(depth)))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
