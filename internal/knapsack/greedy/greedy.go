// Package greedy implements the ratio heuristic for docket selection:
// cases are ranked by recoverable value per effort hour and accepted in
// that order while they fit the remaining capacity.
//
// The heuristic runs in O(n log n) and always returns a feasible
// selection, but it is not optimal for 0-1 knapsack: a high-ratio case
// can crowd out a pair of lower-ratio cases worth more together. The dp
// package closes that gap at the price of a capacity-discretized table.
package greedy

import (
	"context"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

// Solver is the greedy ratio solver for a fixed capacity budget.
type Solver struct {
	capacity float64
}

// New creates a greedy solver with the given capacity in effort hours.
func New(capacity float64) *Solver {
	return &Solver{capacity: capacity}
}

// Name identifies the algorithm in summaries and metrics.
func (s *Solver) Name() string {
	return "greedy"
}

// Solve ranks cases by descending value/cost ratio (ties by ascending
// index) and accepts each case whose cost still fits. The selection is
// returned in acceptance order. A capacity of zero or less yields an
// empty selection without error.
func (s *Solver) Solve(_ context.Context, in *knapsack.Instance) (knapsack.Selection, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if s.capacity <= 0 {
		return knapsack.Selection{}, nil
	}

	selected := knapsack.Selection{}
	total := 0.0
	for _, i := range knapsack.RankByRatio(in) {
		if total+in.Costs[i] <= s.capacity {
			selected = append(selected, i)
			total += in.Costs[i]
		}
	}
	return selected, nil
}
