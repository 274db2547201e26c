package knapsack

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Summary is the immutable run report produced once per solve. It
// combines selection counts, aggregate totals and derived per-unit rates
// with the algorithm name and parameters that produced them.
type Summary struct {
	Algorithm       string                 `json:"algorithm"`
	Parameters      map[string]interface{} `json:"parameters,omitempty"`
	SelectedCases   int                    `json:"selected_cases"`
	CandidateCases  int                    `json:"candidate_cases"`
	SelectionRate   float64                `json:"selection_rate"`
	TotalHours      float64                `json:"total_hours"`
	TotalValue      float64                `json:"total_value"`
	ValuePerHour    float64                `json:"value_per_hour"`
	AvgValuePerCase float64                `json:"avg_value_per_case"`
	AvgHoursPerCase float64                `json:"avg_hours_per_case"`
	ElapsedSeconds  float64                `json:"elapsed_seconds"`
}

// BuildSummary derives the run report from a solver's output. costs and
// values are the per-case entries of the selected cases (see
// Instance.Select), candidates the size of the pool the solver ran
// against. All derived rates use safe division: a zero denominator
// yields 0, never a fault.
func BuildSummary(algorithm string, params map[string]interface{}, candidates int, costs, values []float64, elapsed time.Duration) Summary {
	selected := len(costs)
	totalHours := floats.Sum(costs)
	totalValue := floats.Sum(values)

	return Summary{
		Algorithm:       algorithm,
		Parameters:      params,
		SelectedCases:   selected,
		CandidateCases:  candidates,
		SelectionRate:   safeDiv(float64(selected), float64(candidates)),
		TotalHours:      totalHours,
		TotalValue:      totalValue,
		ValuePerHour:    safeDiv(totalValue, totalHours),
		AvgValuePerCase: safeDiv(totalValue, float64(selected)),
		AvgHoursPerCase: safeDiv(totalHours, float64(selected)),
		ElapsedSeconds:  elapsed.Seconds(),
	}
}

// safeDiv returns a/b, or 0 when b is 0.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
