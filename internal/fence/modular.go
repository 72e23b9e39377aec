package fence

import (
	"fmt"
	"math/big"
	"math/bits"
)

// DecimalModulus returns 10^digits, the modulus that selects the last
// `digits` decimal digits of a count.
func DecimalModulus(digits int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
}

// CountWaysMod computes W(n, k) mod m using binary exponentiation of the
// transfer matrix with every intermediate reduced mod m. Memory usage is
// O(log m) regardless of n, making it suitable for computing the last K
// decimal digits of W(n, k) for arbitrarily large n.
func CountWaysMod(n, k uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}

	if n == 0 || k == 0 {
		return big.NewInt(0), nil
	}
	if n == 1 {
		return new(big.Int).Mod(new(big.Int).SetUint64(k), m), nil
	}

	w1 := new(big.Int).Mod(new(big.Int).SetUint64(k), m)
	w2 := new(big.Int).Mul(w1, w1)
	w2.Mod(w2, m)
	if n == 2 {
		return w2, nil
	}

	a := new(big.Int).Mod(new(big.Int).SetUint64(k-1), m)

	// result and base as flat [a b c d] matrices mod m.
	res := []*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(1)}
	base := []*big.Int{new(big.Int).Set(a), new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)}

	e := n - 2
	for i := bits.Len64(e) - 1; i >= 0; i-- {
		res = matMulMod(res, res, m)
		if (e>>uint(i))&1 == 1 {
			res = matMulMod(res, base, m)
		}
	}

	// W(n) mod m = res[0]*W(2) + res[1]*W(1) mod m.
	t := new(big.Int).Mul(res[0], w2)
	t.Add(t, new(big.Int).Mul(res[1], w1))
	return t.Mod(t, m), nil
}

// matMulMod returns x*y with all entries reduced mod m.
func matMulMod(x, y []*big.Int, m *big.Int) []*big.Int {
	var t1, t2 big.Int
	out := []*big.Int{new(big.Int), new(big.Int), new(big.Int), new(big.Int)}
	out[0].Add(t1.Mul(x[0], y[0]), t2.Mul(x[1], y[2])).Mod(out[0], m)
	out[1].Add(t1.Mul(x[0], y[1]), t2.Mul(x[1], y[3])).Mod(out[1], m)
	out[2].Add(t1.Mul(x[2], y[0]), t2.Mul(x[3], y[2])).Mod(out[2], m)
	out[3].Add(t1.Mul(x[2], y[1]), t2.Mul(x[3], y[3])).Mod(out[3], m)
	return out
}
