package cli

import (
	"bytes"
	"io"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/fencecalc/internal/cli/mocks"
	"github.com/agbru/fencecalc/internal/progress"
	"github.com/agbru/fencecalc/internal/ui"
	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"
)

func TestDisplayResult(t *testing.T) {
	// Initialize theme
	ui.InitTheme(false)

	tests := []struct {
		name      string
		result    *big.Int
		n         uint64
		k         uint64
		duration  time.Duration
		verbose   bool
		details   bool
		showValue bool
		contains  []string
	}{
		{
			name:      "Details only",
			result:    big.NewInt(12345),
			n:         10,
			k:         3,
			duration:  time.Millisecond,
			verbose:   false,
			details:   true,
			showValue: false,
			contains:  []string{"Result binary size:", "Detailed result analysis", "Calculation time", "Number of digits"},
		},
		{
			name:      "ShowValue Output",
			result:    big.NewInt(12345),
			n:         10,
			k:         3,
			duration:  time.Millisecond,
			verbose:   false,
			details:   false,
			showValue: true,
			contains:  []string{"Calculated value", "W(10, 3) =", "12,345"},
		},
		{
			name:      "Truncated Output",
			result:    new(big.Int).Exp(big.NewInt(10), big.NewInt(200), nil), // Very large number
			n:         1000,
			k:         5,
			duration:  time.Millisecond,
			verbose:   false,
			details:   false,
			showValue: true,
			contains:  []string{"(truncated)", "Tip: use"},
		},
		{
			name:      "Verbose Output",
			result:    new(big.Int).Exp(big.NewInt(10), big.NewInt(200), nil),
			n:         1000,
			k:         5,
			duration:  time.Millisecond,
			verbose:   true,
			details:   false,
			showValue: true,
			contains:  []string{"W(1000, 5) ="}, // Should not contain truncated
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.n, tt.k, tt.duration, tt.verbose, tt.details, tt.showValue, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
		})
	}
}

func TestDisplayResult_VerboseNotTruncated(t *testing.T) {
	ui.InitTheme(false)
	var buf bytes.Buffer
	large := new(big.Int).Exp(big.NewInt(10), big.NewInt(200), nil)
	DisplayResult(large, 1000, 5, time.Millisecond, true, false, true, &buf)
	if strings.Contains(buf.String(), "(truncated)") {
		t.Error("Verbose output should not be truncated")
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestColors(t *testing.T) {
	// Initialize with false (colors enabled if terminal supports)
	ui.InitTheme(false)

	// Just call them to ensure coverage - use ui package directly
	_ = ui.ColorReset()
	_ = ui.ColorRed()
	_ = ui.ColorGreen()
	_ = ui.ColorYellow()
	_ = ui.ColorBlue()
	_ = ui.ColorMagenta()
	_ = ui.ColorCyan()
	_ = ui.ColorBold()
	_ = ui.ColorUnderline()
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockS := mocks.NewMockSpinner(ctrl)
	mockS.EXPECT().Start()
	mockS.EXPECT().Stop()
	mockS.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.ProgressUpdate)

	go func() {
		// Send some updates
		progressChan <- progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()
}

func TestDisplayProgress_ZeroCalculators(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
	// Should return immediately, coverage check
}
