package fence

import (
	apperrors "github.com/agbru/fencecalc/internal/errors"
)

// CountWays returns the number of ways to paint n fence posts with k colors
// such that no more than two consecutive posts share a color.
//
// Inputs are validated eagerly: negative n or k yields a ValidationError,
// never a number. The function is pure and safe for concurrent callers.
//
// Parameters:
//   - n: The number of fence posts (>= 0).
//   - k: The number of available colors (>= 0).
//
// Returns:
//   - int64: The count of valid colorings.
//   - error: ValidationError for negative input, OverflowError when the
//     count exceeds int64.
func CountWays(n, k int) (int64, error) {
	if n < 0 {
		return 0, apperrors.ValidationError{Field: "posts", Message: "must be non-negative"}
	}
	if k < 0 {
		return 0, apperrors.ValidationError{Field: "colors", Message: "must be non-negative"}
	}
	if n == 0 || k == 0 {
		return 0, nil
	}
	if n == 1 {
		return int64(k), nil
	}

	// same: colorings whose last two posts match.
	// diff: colorings whose last two posts differ.
	same := int64(k)
	diff, ok := mulInt64(int64(k), int64(k-1))
	if !ok {
		return 0, apperrors.OverflowError{Posts: n, Colors: k}
	}

	for i := 2; i < n; i++ {
		sum, ok := addInt64(same, diff)
		if !ok {
			return 0, apperrors.OverflowError{Posts: n, Colors: k}
		}
		next, ok := mulInt64(int64(k-1), sum)
		if !ok {
			return 0, apperrors.OverflowError{Posts: n, Colors: k}
		}
		// A post may only repeat the color when the previous pair differed.
		same, diff = diff, next
	}

	total, ok := addInt64(same, diff)
	if !ok {
		return 0, apperrors.OverflowError{Posts: n, Colors: k}
	}
	return total, nil
}

// addInt64 adds two non-negative int64 values, reporting overflow.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// mulInt64 multiplies two non-negative int64 values, reporting overflow.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a || product < 0 {
		return 0, false
	}
	return product, true
}
