// Package fence implements the fence coloring counting problem: the number of
// ways to paint n fence posts with k colors such that no more than two
// consecutive posts share a color (no run of one color longer than 2).
//
// The counts obey a linear recurrence. With SAME(i) the number of valid
// colorings of the first i+1 posts where post i repeats the previous color,
// and DIFF(i) the number where it differs:
//
//	SAME(1) = k            DIFF(1) = k*(k-1)
//	SAME(i) = DIFF(i-1)    DIFF(i) = (k-1) * (SAME(i-1) + DIFF(i-1))
//
// Summing the two gives the total recurrence used by the O(log n) calculator:
//
//	W(1) = k, W(2) = k², W(n) = (k-1) * (W(n-1) + W(n-2)) for n >= 3
//
// CountWays exposes the int64 surface with overflow detection; the Calculator
// implementations compute exact arbitrary-precision counts for large inputs.
package fence
