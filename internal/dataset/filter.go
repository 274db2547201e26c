package dataset

import (
	"sort"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

// FilterMode selects the ranking used by TopK.
type FilterMode string

const (
	// FilterNone keeps the whole pool.
	FilterNone FilterMode = "none"
	// FilterValue keeps the top-k cases by monetary value.
	FilterValue FilterMode = "value"
	// FilterRatio keeps the top-k cases by value per effort hour.
	FilterRatio FilterMode = "ratio"
)

// TopK optionally reduces the pool to the k best cases before an
// expensive solve (the DP table grows with the pool). It returns the
// reduced item vector in rank order and a map from reduced index to
// original pool index. k <= 0 or k >= n keeps the pool unchanged, as
// does FilterNone.
func TopK(in *knapsack.Instance, k int, mode FilterMode) (*knapsack.Instance, []int, error) {
	n := in.Len()
	identity := func() (*knapsack.Instance, []int, error) {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return in, idx, nil
	}

	if k <= 0 || k >= n || mode == FilterNone || mode == "" {
		return identity()
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	switch mode {
	case FilterValue:
		sort.SliceStable(order, func(a, b int) bool {
			return in.Values[order[a]] > in.Values[order[b]]
		})
	case FilterRatio:
		order = knapsack.RankByRatio(in)
	default:
		return nil, nil, knapsack.NewInvalidInputf("unknown filter mode %q", mode).
			WithComponent("dataset")
	}

	values := make([]float64, k)
	costs := make([]float64, k)
	idx := make([]int, k)
	for i, orig := range order[:k] {
		values[i] = in.Values[orig]
		costs[i] = in.Costs[orig]
		idx[i] = orig
	}
	reduced, err := knapsack.NewInstance(values, costs)
	if err != nil {
		return nil, nil, err
	}
	return reduced, idx, nil
}
