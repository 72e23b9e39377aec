package fence

import (
	"context"
	"math/big"

	"github.com/agbru/fencecalc/internal/progress"
)

// IterativeSameDiff is the reference algorithm: a forward O(n) sweep over the
// SAME/DIFF recurrence using arbitrary-precision integers. It is the most
// direct transcription of the counting argument and serves as the oracle the
// faster algorithms are validated against.
type IterativeSameDiff struct{}

// Name returns the algorithm identifier.
func (c *IterativeSameDiff) Name() string {
	return "Iterative Same/Diff (O(n))"
}

// CalculateCore computes W(n, k) by iterating the SAME/DIFF recurrence.
// Context cancellation is checked every opts.CancelCheckInterval iterations.
func (c *IterativeSameDiff) CalculateCore(ctx context.Context, report progress.ProgressCallback, n, k uint64, opts Options) (*big.Int, error) {
	opts = opts.withDefaults()
	if n == 0 || k == 0 {
		return big.NewInt(0), nil
	}
	if n == 1 {
		return new(big.Int).SetUint64(k), nil
	}

	kMinus1 := new(big.Int).SetUint64(k - 1)
	same := new(big.Int).SetUint64(k)
	diff := new(big.Int).Mul(new(big.Int).SetUint64(k), kMinus1)
	sum := new(big.Int)

	checkInterval := uint64(opts.CancelCheckInterval)
	for i := uint64(2); i < n; i++ {
		if i%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			if report != nil {
				report(float64(i) / float64(n))
			}
		}

		// SAME(i) = DIFF(i-1); DIFF(i) = (k-1) * (SAME(i-1) + DIFF(i-1)).
		sum.Add(same, diff)
		same.Set(diff)
		diff.Mul(sum, kMinus1)
	}

	return new(big.Int).Add(same, diff), nil
}
