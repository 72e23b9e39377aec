// Package progress defines the progress reporting types shared between the
// calculation engine and the presentation layers.
package progress

// ProgressUpdate represents a single progress notification emitted by a
// running calculator. Updates are aggregated by the consumer to produce a
// consolidated view when several calculators run concurrently.
type ProgressUpdate struct {
	// CalculatorIndex identifies which calculator sent the update
	// (0 to numCalculators-1).
	CalculatorIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ProgressCallback receives a normalized progress value (0.0 to 1.0).
// Calculators invoke it periodically during long-running computations.
type ProgressCallback func(value float64)
