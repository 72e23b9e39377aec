package fence

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	apperrors "github.com/agbru/fencecalc/internal/errors"
	"github.com/agbru/fencecalc/internal/progress"
)

func TestFactory_List(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	names := factory.List()
	if len(names) < 2 {
		t.Fatalf("expected at least 2 algorithms, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("List() not sorted: %v", names)
		}
	}
	for _, want := range []string{"iterative", "matrix"} {
		if _, err := factory.Get(want); err != nil {
			t.Errorf("Get(%q) returned error: %v", want, err)
		}
	}
}

func TestFactory_GetUnknown(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	_, err := factory.Get("bogus")
	var configErr apperrors.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("Get(bogus) error = %v, want ConfigError", err)
	}
}

func TestFactory_GetAllMatchesList(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	all := factory.GetAll()
	names := factory.List()
	if len(all) != len(names) {
		t.Fatalf("GetAll() returned %d calculators, List() has %d names", len(all), len(names))
	}
}

func TestCalculate_EmitsProgress(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&IterativeSameDiff{})
	progressChan := make(chan progress.ProgressUpdate, 1024)

	result, err := calc.Calculate(context.Background(), progressChan, 3, 100_000, 2, Options{CancelCheckInterval: 1000})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if result.Sign() <= 0 {
		t.Errorf("result should be positive, got %s", result)
	}
	close(progressChan)

	var got int
	var final float64
	for update := range progressChan {
		if update.CalculatorIndex != 3 {
			t.Errorf("CalculatorIndex = %d, want 3", update.CalculatorIndex)
		}
		if update.Value < 0 || update.Value > 1 {
			t.Errorf("progress value %v out of range", update.Value)
		}
		final = update.Value
		got++
	}
	if got == 0 {
		t.Error("expected at least one progress update")
	}
	if final != 1.0 {
		t.Errorf("final progress = %v, want 1.0", final)
	}
}

func TestCalculate_NilProgressChannel(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&MatrixExponentiation{})
	result, err := calc.Calculate(context.Background(), nil, 0, 7, 2, Options{})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if result.Cmp(big.NewInt(42)) != 0 {
		t.Errorf("W(7, 2) = %s, want 42", result)
	}
}

func TestCalculate_Cancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cores := []coreCalculator{&IterativeSameDiff{}, &MatrixExponentiation{}}
	for _, core := range cores {
		start := time.Now()
		_, err := core.CalculateCore(ctx, nil, 50_000_000, 10, Options{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", core.Name(), err)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("%s: cancellation took %s, should abort promptly", core.Name(), elapsed)
		}
	}
}

// TestCalculateCore_ZeroOptions verifies that cores apply the default
// cancellation check interval themselves, so direct calls with zero-valued
// Options behave the same as calls through the Calculator wrapper.
func TestCalculateCore_ZeroOptions(t *testing.T) {
	t.Parallel()
	cores := []coreCalculator{&IterativeSameDiff{}, &MatrixExponentiation{}}
	for _, core := range cores {
		result, err := core.CalculateCore(context.Background(), nil, 10_000, 2, Options{})
		if err != nil {
			t.Fatalf("%s: CalculateCore returned error: %v", core.Name(), err)
		}
		if result.Sign() <= 0 {
			t.Errorf("%s: result should be positive, got %s", core.Name(), result)
		}
	}
}

func TestOptions_Defaults(t *testing.T) {
	t.Parallel()
	opts := Options{}.withDefaults()
	if opts.CancelCheckInterval != DefaultCancelCheckInterval {
		t.Errorf("CancelCheckInterval = %d, want %d", opts.CancelCheckInterval, DefaultCancelCheckInterval)
	}

	custom := Options{CancelCheckInterval: 17}.withDefaults()
	if custom.CancelCheckInterval != 17 {
		t.Errorf("explicit CancelCheckInterval overridden: %d", custom.CancelCheckInterval)
	}
}
