// Package dp implements the exact dynamic-programming solver for docket
// selection. Effort hours are discretized into integer units of a caller
// chosen resolution; the solver is then a textbook 0-1 knapsack over the
// discretized costs.
//
// Time and memory are O(n*C) where C = floor(capacity/resolution). The
// result is exactly optimal for the discretized instance; fidelity to
// the continuous-cost problem is bounded by the resolution. Callers own
// that tradeoff: a 0.25h resolution over a 52,800h yearly budget gives
// C = 211,200 columns per case, so shrink the pool (see dataset.TopK) or
// coarsen the resolution before the table gets out of hand.
package dp

import (
	"context"
	"math"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

// Solver is the discretized exact solver for a fixed capacity budget.
type Solver struct {
	capacity   float64
	resolution float64
}

// New creates a DP solver. capacity is the effort budget in hours and
// resolution the discretization step in the same unit.
func New(capacity, resolution float64) *Solver {
	return &Solver{capacity: capacity, resolution: resolution}
}

// Name identifies the algorithm in summaries and metrics.
func (s *Solver) Name() string {
	return "dp"
}

// Solve builds the (n+1)x(C+1) value table and backtracks the optimal
// selection, returned in ascending index order. On exact value ties the
// solver prefers not taking a case, so the earliest-processed equal
// alternative wins and output is deterministic. Cancellation is checked
// after each case row; a cancelled solve returns ctx.Err() and no
// partial result.
func (s *Solver) Solve(ctx context.Context, in *knapsack.Instance) (knapsack.Selection, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(s.resolution) || s.resolution <= 0 {
		return nil, knapsack.NewInvalidInputf("resolution = %v, want > 0", s.resolution).
			WithComponent("dp")
	}

	capUnits := int(math.Floor(s.capacity / s.resolution))
	if capUnits < 0 {
		capUnits = 0
	}
	n := in.Len()
	if n == 0 || capUnits == 0 {
		return knapsack.Selection{}, nil
	}

	weights := make([]int, n)
	for i, c := range in.Costs {
		weights[i] = int(math.Round(c / s.resolution))
	}

	// Flat row-major tables: row k holds the best value using the first
	// k cases, taken[k*width+c] whether case k-1 is in that optimum.
	width := capUnits + 1
	table := make([]float64, (n+1)*width)
	taken := make([]bool, (n+1)*width)

	for k := 1; k <= n; k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		w, v := weights[k-1], in.Values[k-1]
		row, prev := k*width, (k-1)*width
		for c := 0; c <= capUnits; c++ {
			best := table[prev+c]
			if w <= c {
				// Strict > keeps "not taken" on exact ties.
				if cand := table[prev+c-w] + v; cand > best {
					best = cand
					taken[row+c] = true
				}
			}
			table[row+c] = best
		}
	}

	selected := knapsack.Selection{}
	remaining := capUnits
	for k := n; k >= 1; k-- {
		if taken[k*width+remaining] {
			selected = append(selected, k-1)
			remaining -= weights[k-1]
		}
	}
	for l, r := 0, len(selected)-1; l < r; l, r = l+1, r-1 {
		selected[l], selected[r] = selected[r], selected[l]
	}
	return selected, nil
}
