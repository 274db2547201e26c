// Package knapsack defines the shared contracts for the docket selection
// solvers: the immutable item vector they consume, the selection they
// produce, and the summary record built for each run.
//
// A solve instance is a pair of parallel vectors over the candidate pool:
// the recoverable monetary value of each case and the estimated effort in
// hours to work it. Selecting a subset of cases that maximizes recovered
// value within a fixed workforce-hours budget is a 0-1 knapsack problem;
// the greedy, dp and ga sub-packages implement interchangeable solvers
// for it.
package knapsack

import (
	"context"
	"math"
)

// Instance is the read-only item vector shared by all solvers.
// Values[i] is the monetary benefit of case i and Costs[i] its effort in
// hours. Both entries must be strictly positive and finite; upstream
// ingestion is responsible for filtering, and Validate rejects anything
// that slipped through.
type Instance struct {
	Values []float64
	Costs  []float64
}

// NewInstance copies the given vectors into a validated Instance.
// The copy keeps the instance immutable for the duration of solving even
// if the caller mutates its own slices afterwards.
func NewInstance(values, costs []float64) (*Instance, error) {
	inst := &Instance{
		Values: append([]float64(nil), values...),
		Costs:  append([]float64(nil), costs...),
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Len returns the number of candidate cases.
func (in *Instance) Len() int {
	return len(in.Values)
}

// Validate checks the item-vector invariants: equal lengths and strictly
// positive, finite values and costs. It returns an invalid-input error on
// the first violation found.
func (in *Instance) Validate() error {
	if len(in.Values) != len(in.Costs) {
		return NewInvalidInputf("vector length mismatch: %d values vs %d costs",
			len(in.Values), len(in.Costs)).WithComponent("instance")
	}
	for i, v := range in.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return NewInvalidInputf("value[%d] = %v, want strictly positive and finite", i, v).
				WithComponent("instance")
		}
		c := in.Costs[i]
		if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
			return NewInvalidInputf("cost[%d] = %v, want strictly positive and finite", i, c).
				WithComponent("instance")
		}
	}
	return nil
}

// Select gathers the cost and value entries for the given selection.
// The returned slices feed BuildSummary and downstream persistence.
func (in *Instance) Select(sel Selection) (costs, values []float64) {
	costs = make([]float64, 0, len(sel))
	values = make([]float64, 0, len(sel))
	for _, i := range sel {
		costs = append(costs, in.Costs[i])
		values = append(values, in.Values[i])
	}
	return costs, values
}

// Selection is an ordered, duplicate-free set of indices into the
// instance vectors. The producing solver fixes the order: greedy emits
// acceptance order, dp and ga emit ascending index order.
type Selection []int

// TotalCost sums the effort hours of the selected cases.
func (s Selection) TotalCost(in *Instance) float64 {
	total := 0.0
	for _, i := range s {
		total += in.Costs[i]
	}
	return total
}

// TotalValue sums the monetary value of the selected cases.
func (s Selection) TotalValue(in *Instance) float64 {
	total := 0.0
	for _, i := range s {
		total += in.Values[i]
	}
	return total
}

// Solver is the contract all three solvers satisfy. Solve never mutates
// the instance, so a single Instance may be shared by concurrent solver
// runs for comparison. Cancellation via ctx is cooperative: solvers check
// it at coarse boundaries (DP rows, GA generations) and return ctx.Err().
type Solver interface {
	// Name identifies the algorithm in summaries and metrics.
	Name() string

	// Solve returns the selected case indices for the instance.
	Solve(ctx context.Context, in *Instance) (Selection, error)
}
