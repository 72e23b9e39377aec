package fence

import (
	"context"
	"math/big"
	"testing"
)

func TestCountWaysMod(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		n, k     uint64
		mod      int64
		expected int64
	}{
		{"zero posts", 0, 5, 1000, 0},
		{"zero colors", 5, 0, 1000, 0},
		{"single post", 1, 7, 5, 2},
		{"two posts", 2, 4, 10, 6},
		{"reference value mod 100", 7, 2, 100, 42},
		{"modulus one collapses everything", 7, 2, 1, 0},
		{"last three digits", 10, 3, 1000, 408},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CountWaysMod(tt.n, tt.k, big.NewInt(tt.mod))
			if err != nil {
				t.Fatalf("CountWaysMod(%d, %d, %d) returned error: %v", tt.n, tt.k, tt.mod, err)
			}
			if got.Cmp(big.NewInt(tt.expected)) != 0 {
				t.Errorf("CountWaysMod(%d, %d, %d) = %s, want %d", tt.n, tt.k, tt.mod, got, tt.expected)
			}
		})
	}
}

func TestCountWaysMod_InvalidModulus(t *testing.T) {
	t.Parallel()
	for _, m := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		if _, err := CountWaysMod(7, 2, m); err == nil {
			t.Errorf("CountWaysMod with modulus %v should fail", m)
		}
	}
}

// TestCountWaysMod_MatchesFullComputation verifies the modular path against
// the exact calculators reduced after the fact.
func TestCountWaysMod_MatchesFullComputation(t *testing.T) {
	t.Parallel()
	matrix := &MatrixExponentiation{}
	mod := big.NewInt(1_000_000_007)

	for _, tc := range []struct{ n, k uint64 }{
		{3, 1}, {7, 2}, {50, 3}, {100, 10}, {999, 7}, {12345, 2},
	} {
		full, err := matrix.CalculateCore(context.Background(), nil, tc.n, tc.k, Options{})
		if err != nil {
			t.Fatalf("matrix(%d, %d) returned error: %v", tc.n, tc.k, err)
		}
		want := new(big.Int).Mod(full, mod)

		got, err := CountWaysMod(tc.n, tc.k, mod)
		if err != nil {
			t.Fatalf("CountWaysMod(%d, %d) returned error: %v", tc.n, tc.k, err)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("CountWaysMod(%d, %d) = %s, full computation mod p = %s", tc.n, tc.k, got, want)
		}
	}
}
