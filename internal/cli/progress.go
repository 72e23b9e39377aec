package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/fencecalc/internal/format"
	"github.com/agbru/fencecalc/internal/progress"
	"github.com/briandowns/spinner"
)

// DisplayProgress renders a consolidated spinner and progress bar for one or
// more concurrent calculations. It consumes progress updates until the channel
// is closed, aggregating per-calculator progress into a single average with an
// estimated time remaining.
//
// The function signals completion through the WaitGroup, so callers can wait
// for the final progress frame to be written before printing results.
//
// Parameters:
//   - wg: A WaitGroup whose Done is called when the display loop exits.
//   - progressChan: The channel of per-calculator progress updates.
//   - numCalculators: The number of calculators being tracked.
//   - out: The writer for the spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()

	if numCalculators <= 0 {
		// Nothing to track; drain so senders never block.
		for range progressChan {
		}
		return
	}

	tracker := format.NewProgressWithETA(numCalculators)

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" %s", format.FormatProgressBarWithETA(0, 0, ProgressBarWidth)))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(fmt.Sprintf(" %s", format.FormatProgressBarWithETA(1.0, 0, ProgressBarWidth)))
				return
			}
			tracker.UpdateWithETA(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			avg := tracker.CalculateAverage()
			s.UpdateSuffix(fmt.Sprintf(" %s", format.FormatProgressBarWithETA(avg, tracker.GetETA(), ProgressBarWidth)))
		}
	}
}
