package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// etaSmoothingFactor controls the exponential moving average applied to the
// observed progress rate. Lower values react more slowly but avoid jitter
// from bursty progress updates.
const etaSmoothingFactor = 0.3

// ProgressWithETA aggregates per-calculator progress values and derives an
// estimated time remaining from a smoothed progress rate. It is safe for
// concurrent use.
type ProgressWithETA struct {
	mu             sync.Mutex
	progresses     []float64
	numCalculators int

	startTime    time.Time
	lastUpdate   time.Time
	lastAverage  float64
	smoothedRate float64 // progress units per second
}

// NewProgressWithETA creates an aggregator for the given number of calculators.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
		startTime:      now,
		lastUpdate:     now,
	}
}

// UpdateWithETA records a progress value for one calculator and returns the
// new average progress together with the current ETA estimate.
//
// Parameters:
//   - index: The calculator index (0 to numCalculators-1).
//   - value: The normalized progress value (0.0 to 1.0).
//
// Returns:
//   - float64: The average progress across all calculators.
//   - time.Duration: The estimated time remaining (0 when unknown).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= 0 && index < len(p.progresses) {
		p.progresses[index] = value
	}

	avg := p.averageLocked()
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && avg > p.lastAverage {
		rate := (avg - p.lastAverage) / elapsed
		if p.smoothedRate == 0 {
			p.smoothedRate = rate
		} else {
			p.smoothedRate = etaSmoothingFactor*rate + (1-etaSmoothingFactor)*p.smoothedRate
		}
		p.lastUpdate = now
		p.lastAverage = avg
	}

	return avg, p.etaLocked(avg)
}

// CalculateAverage returns the current average progress without updating.
func (p *ProgressWithETA) CalculateAverage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.averageLocked()
}

// GetETA returns the current ETA estimate without updating.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.averageLocked())
}

func (p *ProgressWithETA) averageLocked() float64 {
	if p.numCalculators == 0 {
		return 0
	}
	var total float64
	for _, v := range p.progresses {
		total += v
	}
	return total / float64(p.numCalculators)
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.smoothedRate <= 0 || avg >= 1.0 {
		return 0
	}
	remaining := (1.0 - avg) / p.smoothedRate
	return time.Duration(remaining * float64(time.Second))
}

// FormatETA renders an ETA for display. Unknown estimates render as "--:--".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "--:--"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatProgressBarWithETA renders a textual progress bar with a percentage
// and ETA suffix, e.g. "[████░░░░] 50.0% ETA 00:12".
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - eta: The estimated time remaining.
//   - width: The character width of the bar itself.
//
// Returns:
//   - string: The rendered progress line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	filled := int(progress * float64(width))
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	b.WriteByte(']')
	fmt.Fprintf(&b, " %.1f%% ETA %s", progress*100, FormatETA(eta))
	return b.String()
}
