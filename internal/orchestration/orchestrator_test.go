package orchestration

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"
	"time"

	apperrors "github.com/agbru/fencecalc/internal/errors"
	"github.com/agbru/fencecalc/internal/fence"
	"github.com/agbru/fencecalc/internal/progress"
)

// MockResultPresenter is a mock implementation of ResultPresenter for testing.
type MockResultPresenter struct {
	presented *CalculationResult
}

func (*MockResultPresenter) PresentComparisonTable(results []CalculationResult, out io.Writer) {}
func (m *MockResultPresenter) PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer) {
	m.presented = &result
}
func (*MockResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitErrorGeneric
}

// MockCalculator is a mock implementation of fence.Calculator used for
// testing the orchestration logic without invoking real algorithms.
type MockCalculator struct {
	NameFunc      func() string
	CalculateFunc func(ctx context.Context, report progress.ProgressCallback, index int, n, k uint64, opts fence.Options) (*big.Int, error)
}

// Name returns the mocked name of the calculator.
func (m *MockCalculator) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "Mock"
}

// Calculate invokes the mocked CalculateFunc.
func (m *MockCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n, k uint64, opts fence.Options) (*big.Int, error) {
	if m.CalculateFunc != nil {
		reporter := func(pct float64) {
			if progressChan != nil {
				progressChan <- progress.ProgressUpdate{CalculatorIndex: index, Value: pct}
			}
		}
		return m.CalculateFunc(ctx, reporter, index, n, k, opts)
	}
	return big.NewInt(0), nil
}

// TestExecuteCalculations verifies that the orchestrator correctly runs
// calculators and aggregates their results.
func TestExecuteCalculations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		calculators []fence.Calculator
		expectedLen int
		expectError bool
	}{
		{
			name: "Single success",
			calculators: []fence.Calculator{
				&MockCalculator{
					CalculateFunc: func(ctx context.Context, report progress.ProgressCallback, index int, n, k uint64, opts fence.Options) (*big.Int, error) {
						return big.NewInt(42), nil
					},
				},
			},
			expectedLen: 1,
			expectError: false,
		},
		{
			name: "Single failure",
			calculators: []fence.Calculator{
				&MockCalculator{
					CalculateFunc: func(ctx context.Context, report progress.ProgressCallback, index int, n, k uint64, opts fence.Options) (*big.Int, error) {
						return nil, errors.New("mock error")
					},
				},
			},
			expectedLen: 1,
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteCalculations(context.Background(), tt.calculators, 7, 2, fence.Options{}, NullProgressReporter{}, io.Discard)
			if len(results) != tt.expectedLen {
				t.Fatalf("expected %d results, got %d", tt.expectedLen, len(results))
			}
			if tt.expectError && results[0].Err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && results[0].Err != nil {
				t.Errorf("unexpected error: %v", results[0].Err)
			}
		})
	}
}

// TestExecuteCalculations_RealAlgorithms runs the real calculators end to end
// and checks they agree on the reference value.
func TestExecuteCalculations_RealAlgorithms(t *testing.T) {
	t.Parallel()
	factory := fence.NewDefaultFactory()
	results := ExecuteCalculations(context.Background(), factory.GetAll(), 7, 2, fence.Options{}, NullProgressReporter{}, io.Discard)

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	want := big.NewInt(42)
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("%s failed: %v", res.Name, res.Err)
		}
		if res.Result.Cmp(want) != 0 {
			t.Errorf("%s = %s, want 42", res.Name, res.Result)
		}
	}
}

// TestAnalyzeComparisonResults verifies the logic for comparing results from
// multiple algorithms: consistent results, handling of failures, and
// detection of mismatches.
func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		results      []CalculationResult
		expectedCode int
	}{
		{
			name: "All consistent",
			results: []CalculationResult{
				{Name: "A", Result: big.NewInt(42), Duration: time.Millisecond},
				{Name: "B", Result: big.NewInt(42), Duration: 2 * time.Millisecond},
			},
			expectedCode: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch detected",
			results: []CalculationResult{
				{Name: "A", Result: big.NewInt(42), Duration: time.Millisecond},
				{Name: "B", Result: big.NewInt(43), Duration: 2 * time.Millisecond},
			},
			expectedCode: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failed",
			results: []CalculationResult{
				{Name: "A", Err: errors.New("boom")},
			},
			expectedCode: apperrors.ExitErrorGeneric,
		},
		{
			name: "Partial failure still succeeds",
			results: []CalculationResult{
				{Name: "A", Err: errors.New("boom")},
				{Name: "B", Result: big.NewInt(42), Duration: time.Millisecond},
			},
			expectedCode: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &MockResultPresenter{}
			opts := PresentationOptions{Posts: 7, Colors: 2}
			code := AnalyzeComparisonResults(tt.results, opts, presenter, io.Discard)
			if code != tt.expectedCode {
				t.Errorf("exit code = %d, want %d", code, tt.expectedCode)
			}
		})
	}
}

// TestAnalyzeComparisonResults_PresentsFastestValid verifies that the fastest
// successful result is the one presented.
func TestAnalyzeComparisonResults_PresentsFastestValid(t *testing.T) {
	t.Parallel()
	presenter := &MockResultPresenter{}
	results := []CalculationResult{
		{Name: "Slow", Result: big.NewInt(42), Duration: 5 * time.Millisecond},
		{Name: "Fast", Result: big.NewInt(42), Duration: time.Millisecond},
	}

	code := AnalyzeComparisonResults(results, PresentationOptions{Posts: 7, Colors: 2}, presenter, io.Discard)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want success", code)
	}
	if presenter.presented == nil || presenter.presented.Name != "Fast" {
		t.Errorf("presented result = %+v, want the fastest", presenter.presented)
	}
}

func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := fence.NewDefaultFactory()

	t.Run("all returns every calculator", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("all", factory)
		if len(calculators) != len(factory.List()) {
			t.Errorf("got %d calculators, want %d", len(calculators), len(factory.List()))
		}
	})

	t.Run("named algorithm returns one", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("matrix", factory)
		if len(calculators) != 1 {
			t.Fatalf("got %d calculators, want 1", len(calculators))
		}
	})

	t.Run("unknown algorithm returns nil", func(t *testing.T) {
		t.Parallel()
		if calculators := GetCalculatorsToRun("bogus", factory); calculators != nil {
			t.Errorf("got %v, want nil", calculators)
		}
	})
}
