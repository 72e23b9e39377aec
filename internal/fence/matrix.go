package fence

import (
	"context"
	"math/big"
	"math/bits"

	"github.com/agbru/fencecalc/internal/progress"
)

// MatrixExponentiation computes W(n, k) in O(log n) big-integer operations
// by raising the transfer matrix of the total-count recurrence
//
//	W(n) = (k-1) * (W(n-1) + W(n-2))
//
// to the (n-2)th power:
//
//	| W(n)   |   | k-1  k-1 |^(n-2)   | W(2) |
//	| W(n-1) | = |  1    0  |       * | W(1) |
type MatrixExponentiation struct{}

// Name returns the algorithm identifier.
func (c *MatrixExponentiation) Name() string {
	return "Matrix Exponentiation (O(log n))"
}

// mat2 is a 2x2 matrix of big integers, row major.
type mat2 struct {
	a, b, c, d *big.Int
}

func newMat2(a, b, c, d int64) *mat2 {
	return &mat2{
		a: big.NewInt(a), b: big.NewInt(b),
		c: big.NewInt(c), d: big.NewInt(d),
	}
}

// mul sets m to x*y. The receiver must not alias x or y.
func (m *mat2) mul(x, y *mat2) {
	var t1, t2 big.Int
	m.a.Add(t1.Mul(x.a, y.a), t2.Mul(x.b, y.c))
	m.b.Add(t1.Mul(x.a, y.b), t2.Mul(x.b, y.d))
	m.c.Add(t1.Mul(x.c, y.a), t2.Mul(x.d, y.c))
	m.d.Add(t1.Mul(x.c, y.b), t2.Mul(x.d, y.d))
}

// set copies x into m.
func (m *mat2) set(x *mat2) {
	m.a.Set(x.a)
	m.b.Set(x.b)
	m.c.Set(x.c)
	m.d.Set(x.d)
}

// CalculateCore computes W(n, k) via binary exponentiation of the transfer
// matrix. Progress is reported per processed exponent bit.
func (c *MatrixExponentiation) CalculateCore(ctx context.Context, report progress.ProgressCallback, n, k uint64, opts Options) (*big.Int, error) {
	if n == 0 || k == 0 {
		return big.NewInt(0), nil
	}
	if n == 1 {
		return new(big.Int).SetUint64(k), nil
	}

	w1 := new(big.Int).SetUint64(k)
	w2 := new(big.Int).Mul(w1, w1)
	if n == 2 {
		return w2, nil
	}

	kMinus1 := new(big.Int).SetUint64(k - 1)
	base := newMat2(0, 0, 1, 0)
	base.a.Set(kMinus1)
	base.b.Set(kMinus1)

	power := matPow(ctx, base, n-2, report)
	if power == nil {
		return nil, ctx.Err()
	}

	// (W(n), W(n-1)) = power * (W(2), W(1)); only the first row matters.
	result := new(big.Int).Mul(power.a, w2)
	return result.Add(result, new(big.Int).Mul(power.b, w1)), nil
}

// matPow raises base to the e-th power (e >= 1) by left-to-right binary
// exponentiation. Returns nil when the context is canceled mid-computation.
func matPow(ctx context.Context, base *mat2, e uint64, report progress.ProgressCallback) *mat2 {
	result := newMat2(1, 0, 0, 1)
	scratch := newMat2(0, 0, 0, 0)

	numBits := bits.Len64(e)
	for i := numBits - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		scratch.mul(result, result)
		result.set(scratch)
		if (e>>uint(i))&1 == 1 {
			scratch.mul(result, base)
			result.set(scratch)
		}

		if report != nil {
			report(float64(numBits-i) / float64(numBits))
		}
	}
	return result
}
