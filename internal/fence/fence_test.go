package fence

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/fencecalc/internal/errors"
)

// bruteForceCount enumerates every coloring of n posts with k colors and
// counts those with no run longer than 2. Exponential; only for tiny inputs.
func bruteForceCount(n, k int) int64 {
	if n == 0 || k == 0 {
		return 0
	}
	seq := make([]int, n)
	var count int64
	var rec func(pos int)
	rec = func(pos int) {
		if pos == n {
			count++
			return
		}
		for c := 0; c < k; c++ {
			if pos >= 2 && seq[pos-1] == c && seq[pos-2] == c {
				continue
			}
			seq[pos] = c
			rec(pos + 1)
		}
	}
	rec(0)
	return count
}

func TestCountWays(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		n, k     int
		expected int64
	}{
		{"no posts", 0, 5, 0},
		{"no colors", 5, 0, 0},
		{"both zero", 0, 0, 0},
		{"single post", 1, 7, 7},
		{"two posts allow any pair", 2, 4, 16},
		{"three posts two colors", 3, 2, 6},
		{"three posts one color rejects run of three", 3, 1, 0},
		{"reference value", 7, 2, 42},
		{"three colors", 4, 3, 66},
		{"large but within int64", 42, 3, 2544004146127699968},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CountWays(tt.n, tt.k)
			if err != nil {
				t.Fatalf("CountWays(%d, %d) returned error: %v", tt.n, tt.k, err)
			}
			if got != tt.expected {
				t.Errorf("CountWays(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.expected)
			}
		})
	}
}

func TestCountWays_MatchesBruteForce(t *testing.T) {
	t.Parallel()
	for n := 0; n <= 8; n++ {
		for k := 0; k <= 4; k++ {
			want := bruteForceCount(n, k)
			got, err := CountWays(n, k)
			if err != nil {
				t.Fatalf("CountWays(%d, %d) returned error: %v", n, k, err)
			}
			if got != want {
				t.Errorf("CountWays(%d, %d) = %d, brute force = %d", n, k, got, want)
			}
		}
	}
}

func TestCountWays_NegativeInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		n, k  int
		field string
	}{
		{"negative posts", -1, 3, "posts"},
		{"negative colors", 3, -1, "colors"},
		{"both negative reports posts first", -2, -2, "posts"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := CountWays(tt.n, tt.k)
			var validationErr apperrors.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("CountWays(%d, %d) error = %v, want ValidationError", tt.n, tt.k, err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", validationErr.Field, tt.field)
			}
		})
	}
}

func TestCountWays_Overflow(t *testing.T) {
	t.Parallel()
	_, err := CountWays(200, 50)
	var overflowErr apperrors.OverflowError
	if !errors.As(err, &overflowErr) {
		t.Fatalf("CountWays(200, 50) error = %v, want OverflowError", err)
	}
	if overflowErr.Posts != 200 || overflowErr.Colors != 50 {
		t.Errorf("OverflowError = %+v, want Posts=200 Colors=50", overflowErr)
	}

	// The big-integer calculators still succeed on the same input.
	result, err := (&MatrixExponentiation{}).CalculateCore(context.Background(), nil, 200, 50, Options{})
	if err != nil {
		t.Fatalf("matrix calculator failed: %v", err)
	}
	if result.Sign() <= 0 {
		t.Errorf("matrix result should be positive, got %s", result)
	}
}

func TestCountWays_MonotoneInColors(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 20; n++ {
		prev := int64(-1)
		for k := 0; k <= 6; k++ {
			got, err := CountWays(n, k)
			if err != nil {
				t.Fatalf("CountWays(%d, %d) returned error: %v", n, k, err)
			}
			if got < prev {
				t.Errorf("CountWays(%d, %d) = %d decreased from %d", n, k, got, prev)
			}
			prev = got
		}
	}
}

// TestCountWays_AgreesWithBigIntCalculators cross-validates the int64 surface
// against both arbitrary-precision algorithms in their shared domain.
func TestCountWays_AgreesWithBigIntCalculators(t *testing.T) {
	t.Parallel()
	cores := []coreCalculator{&IterativeSameDiff{}, &MatrixExponentiation{}}
	for n := uint64(1); n <= 40; n++ {
		for k := uint64(1); k <= 4; k++ {
			want, err := CountWays(int(n), int(k))
			if err != nil {
				t.Fatalf("CountWays(%d, %d) returned error: %v", n, k, err)
			}
			for _, core := range cores {
				got, err := core.CalculateCore(context.Background(), nil, n, k, Options{})
				if err != nil {
					t.Fatalf("%s(%d, %d) returned error: %v", core.Name(), n, k, err)
				}
				if got.Cmp(big.NewInt(want)) != 0 {
					t.Errorf("%s(%d, %d) = %s, want %d", core.Name(), n, k, got, want)
				}
			}
		}
	}
}
