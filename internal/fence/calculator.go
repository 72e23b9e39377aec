package fence

import (
	"context"
	"math/big"
	"sort"

	apperrors "github.com/agbru/fencecalc/internal/errors"
	"github.com/agbru/fencecalc/internal/progress"
)

// Options holds the tuning parameters passed to every calculation.
type Options struct {
	// CancelCheckInterval is the number of loop iterations between context
	// cancellation checks in the iterative calculator. Zero selects
	// DefaultCancelCheckInterval.
	CancelCheckInterval int
}

// withDefaults fills in zero-valued options.
func (o Options) withDefaults() Options {
	if o.CancelCheckInterval <= 0 {
		o.CancelCheckInterval = DefaultCancelCheckInterval
	}
	return o
}

// coreCalculator is the internal contract implemented by each counting
// algorithm. Cores report progress through a plain callback and leave
// channel plumbing to the Calculator wrapper.
type coreCalculator interface {
	// Name returns a human-readable algorithm identifier.
	Name() string
	// CalculateCore computes W(n, k) as an exact big integer.
	CalculateCore(ctx context.Context, report progress.ProgressCallback, n, k uint64, opts Options) (*big.Int, error)
}

// Calculator is the public interface used by the orchestration layer.
// Implementations send progress updates tagged with their index so that a
// single consumer can aggregate several concurrent calculations.
type Calculator interface {
	// Name returns a human-readable algorithm identifier.
	Name() string
	// Calculate computes W(n, k), emitting progress updates on progressChan
	// (which may be nil).
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n, k uint64, opts Options) (*big.Int, error)
}

// FenceCalculator adapts a coreCalculator to the Calculator interface.
type FenceCalculator struct {
	core coreCalculator
}

// NewCalculator wraps a core algorithm into a channel-reporting Calculator.
func NewCalculator(core coreCalculator) Calculator {
	return &FenceCalculator{core: core}
}

// Name returns the wrapped algorithm's identifier.
func (c *FenceCalculator) Name() string { return c.core.Name() }

// Calculate runs the wrapped core, translating callback progress into
// channel updates. Sends never block: when the consumer lags, intermediate
// updates are dropped rather than stalling the calculation.
func (c *FenceCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n, k uint64, opts Options) (*big.Int, error) {
	report := func(value float64) {
		if progressChan == nil {
			return
		}
		select {
		case progressChan <- progress.ProgressUpdate{CalculatorIndex: index, Value: value}:
		default:
		}
	}

	result, err := c.core.CalculateCore(ctx, report, n, k, opts.withDefaults())
	if err != nil {
		return nil, err
	}
	report(1.0)
	return result, nil
}

// CalculatorFactory provides named access to the registered algorithms.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// GetAll returns every registered calculator in List() order.
	GetAll() []Calculator
	// List returns the sorted registration names.
	List() []string
}

// extraCores holds algorithms contributed by build-tagged backends
// (see gmp.go). Populated from init functions before any factory exists.
var extraCores = map[string]coreCalculator{}

type defaultFactory struct {
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory with all built-in algorithms
// registered under their canonical names.
func NewDefaultFactory() CalculatorFactory {
	f := &defaultFactory{calculators: map[string]Calculator{
		"iterative": NewCalculator(&IterativeSameDiff{}),
		"matrix":    NewCalculator(&MatrixExponentiation{}),
	}}
	for name, core := range extraCores {
		f.calculators[name] = NewCalculator(core)
	}
	return f
}

// Get returns the calculator registered under name.
func (f *defaultFactory) Get(name string) (Calculator, error) {
	calc, ok := f.calculators[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown algorithm %q (available: %v)", name, f.List())
	}
	return calc, nil
}

// GetAll returns every registered calculator in List() order.
func (f *defaultFactory) GetAll() []Calculator {
	names := f.List()
	calculators := make([]Calculator, 0, len(names))
	for _, name := range names {
		calculators = append(calculators, f.calculators[name])
	}
	return calculators
}

// List returns the sorted registration names.
func (f *defaultFactory) List() []string {
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
