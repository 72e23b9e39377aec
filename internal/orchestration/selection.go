package orchestration

import (
	"github.com/agbru/fencecalc/internal/fence"
)

// GetCalculatorsToRun determines which calculators should be executed based
// on the algorithm selection. Returns calculators in alphabetically sorted
// order for consistent, reproducible behavior.
//
// Parameters:
//   - algo: The selected algorithm name, or "all" for a comparison run.
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []fence.Calculator: A slice of calculators to execute.
func GetCalculatorsToRun(algo string, factory fence.CalculatorFactory) []fence.Calculator {
	if algo == "all" {
		return factory.GetAll()
	}
	if calc, err := factory.Get(algo); err == nil {
		return []fence.Calculator{calc}
	}
	return nil
}
