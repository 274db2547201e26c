package greedy

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

func TestSolveRatioOrder(t *testing.T) {
	// Ratios 6.0, 5.0, 4.0: greedy takes case 0 then 1 (30h), case 2 no
	// longer fits the 50h budget. Value 160 versus the true optimum 220;
	// dp closes that gap (see the dp package tests).
	inst, err := knapsack.NewInstance([]float64{60, 100, 120}, []float64{10, 20, 30})
	require.NoError(t, err)

	sel, err := New(50).Solve(context.Background(), inst)
	require.NoError(t, err)

	assert.Equal(t, knapsack.Selection{0, 1}, sel)
	assert.InDelta(t, 160.0, sel.TotalValue(inst), 1e-12)
	assert.InDelta(t, 30.0, sel.TotalCost(inst), 1e-12)
}

func TestSolveSkipsOversizedAndContinues(t *testing.T) {
	// The best-ratio case does not fit; greedy must still consider the
	// rest in ratio order.
	inst, err := knapsack.NewInstance([]float64{1000, 30, 20}, []float64{100, 10, 10})
	require.NoError(t, err)

	sel, err := New(25).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, knapsack.Selection{1, 2}, sel)
}

func TestSolveTieBreakByIndex(t *testing.T) {
	// Equal ratios: ascending original index wins.
	inst, err := knapsack.NewInstance([]float64{50, 100, 50}, []float64{10, 20, 10})
	require.NoError(t, err)

	sel, err := New(20).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, knapsack.Selection{0, 2}, sel)
}

func TestSolveDegenerateCapacity(t *testing.T) {
	inst, err := knapsack.NewInstance([]float64{60}, []float64{10})
	require.NoError(t, err)

	for _, capacity := range []float64{0, -100} {
		sel, err := New(capacity).Solve(context.Background(), inst)
		require.NoError(t, err)
		assert.Empty(t, sel)
	}
}

func TestSolveEmptyInstance(t *testing.T) {
	inst, err := knapsack.NewInstance(nil, nil)
	require.NoError(t, err)

	sel, err := New(100).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Empty(t, sel)
}

func TestSolveInvalidInput(t *testing.T) {
	inst := &knapsack.Instance{Values: []float64{1, 2}, Costs: []float64{1}}

	_, err := New(10).Solve(context.Background(), inst)
	require.Error(t, err)
	assert.True(t, knapsack.IsInvalidInput(err))
}

func TestSolveFeasibility(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	values := make([]float64, 40)
	costs := make([]float64, 40)
	for i := range values {
		values[i] = 1 + rng.Float64()*1000
		costs[i] = 0.5 + rng.Float64()*20
	}
	inst, err := knapsack.NewInstance(values, costs)
	require.NoError(t, err)

	for _, capacity := range []float64{10, 25, 50, 100, 200, 400} {
		sel, err := New(capacity).Solve(context.Background(), inst)
		require.NoError(t, err)
		assert.LessOrEqual(t, sel.TotalCost(inst), capacity)

		seen := map[int]bool{}
		for _, i := range sel {
			assert.False(t, seen[i], "duplicate index %d", i)
			seen[i] = true
		}
	}
}

func TestSolveCapacityMonotonicity(t *testing.T) {
	inst, err := knapsack.NewInstance([]float64{60, 100, 120}, []float64{10, 20, 30})
	require.NoError(t, err)

	prev := 0.0
	for _, capacity := range []float64{0, 10, 15, 25, 30, 50, 60, 100} {
		sel, err := New(capacity).Solve(context.Background(), inst)
		require.NoError(t, err)

		total := sel.TotalValue(inst)
		assert.GreaterOrEqual(t, total, prev, "capacity %v lost value", capacity)
		prev = total
	}
}
