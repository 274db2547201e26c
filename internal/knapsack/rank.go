package knapsack

import "sort"

// RankByRatio returns the case indices ordered by descending value per
// hour. Ties keep ascending index order so the ranking is deterministic.
// Both the greedy solver and the GA's seeded initialization rank this
// way.
func RankByRatio(in *Instance) []int {
	n := in.Len()
	ratio := make([]float64, n)
	for i := 0; i < n; i++ {
		ratio[i] = in.Values[i] / in.Costs[i]
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable sort over an ascending-index base keeps equal ratios in
	// ascending index order.
	sort.SliceStable(order, func(a, b int) bool {
		return ratio[order[a]] > ratio[order[b]]
	})
	return order
}
