package ga

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

func testConfig(capacity float64) Config {
	return Config{
		Capacity:       capacity,
		PopulationSize: 20,
		Generations:    50,
		CrossoverRate:  0.7,
		MutationRate:   0.02,
		Seed:           7,
	}
}

func TestSolveSeedReproducibility(t *testing.T) {
	inst, err := knapsack.NewInstance([]float64{60, 100, 120}, []float64{10, 20, 30})
	require.NoError(t, err)

	first, err := New(testConfig(50)).Solve(context.Background(), inst)
	require.NoError(t, err)

	for run := 0; run < 3; run++ {
		again, err := New(testConfig(50)).Solve(context.Background(), inst)
		require.NoError(t, err)
		assert.Equal(t, first, again, "run %d diverged for a fixed seed", run)
	}
}

func TestSolveDifferentSeedsMayDiverge(t *testing.T) {
	// Not a behavioral guarantee, just a sanity check that the seed is
	// actually threaded into the generator: on a larger instance two
	// seeds should not be forced to agree bit-for-bit with fitness held
	// equal. We only assert both runs are feasible and deterministic.
	rng := rand.New(rand.NewSource(23))
	values := make([]float64, 30)
	costs := make([]float64, 30)
	for i := range values {
		values[i] = 1 + rng.Float64()*1000
		costs[i] = 0.5 + rng.Float64()*10
	}
	inst, err := knapsack.NewInstance(values, costs)
	require.NoError(t, err)

	for _, seed := range []int64{1, 2, 42} {
		cfg := testConfig(60)
		cfg.Seed = seed

		sel, err := New(cfg).Solve(context.Background(), inst)
		require.NoError(t, err)
		assert.LessOrEqual(t, sel.TotalCost(inst), 60.0+1e-9, "seed %d returned infeasible selection", seed)

		again, err := New(cfg).Solve(context.Background(), inst)
		require.NoError(t, err)
		assert.Equal(t, sel, again, "seed %d not reproducible", seed)
	}
}

func TestSolveFeasibilityAndOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	values := make([]float64, 50)
	costs := make([]float64, 50)
	for i := range values {
		values[i] = 1 + rng.Float64()*500
		costs[i] = 0.25 + rng.Float64()*8
	}
	inst, err := knapsack.NewInstance(values, costs)
	require.NoError(t, err)

	sel, err := New(testConfig(100)).Solve(context.Background(), inst)
	require.NoError(t, err)

	assert.LessOrEqual(t, sel.TotalCost(inst), 100.0+1e-9)
	for i := 1; i < len(sel); i++ {
		assert.Greater(t, sel[i], sel[i-1], "indices must be strictly ascending")
	}
}

func TestSolveElitismMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	values := make([]float64, 40)
	costs := make([]float64, 40)
	for i := range values {
		values[i] = 1 + rng.Float64()*200
		costs[i] = 0.5 + rng.Float64()*5
	}
	inst, err := knapsack.NewInstance(values, costs)
	require.NoError(t, err)

	solver := New(testConfig(40))
	sel, err := solver.Solve(context.Background(), inst)
	require.NoError(t, err)

	history := solver.BestFitnessHistory()
	require.Len(t, history, 50)
	for i := 1; i < len(history); i++ {
		assert.GreaterOrEqual(t, history[i], history[i-1],
			"best-ever fitness regressed at generation %d", i)
	}

	// The returned selection is the best-ever individual.
	assert.InDelta(t, history[len(history)-1], sel.TotalValue(inst), 1e-6)
}

func TestSolveDegenerateShortCircuits(t *testing.T) {
	inst, err := knapsack.NewInstance([]float64{60}, []float64{10})
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero capacity", mutate: func(c *Config) { c.Capacity = 0 }},
		{name: "negative capacity", mutate: func(c *Config) { c.Capacity = -10 }},
		{name: "zero population", mutate: func(c *Config) { c.PopulationSize = 0 }},
		{name: "zero generations", mutate: func(c *Config) { c.Generations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(50)
			tt.mutate(&cfg)

			sel, err := New(cfg).Solve(context.Background(), inst)
			require.NoError(t, err)
			assert.Empty(t, sel)
		})
	}
}

func TestSolveEmptyInstance(t *testing.T) {
	inst, err := knapsack.NewInstance(nil, nil)
	require.NoError(t, err)

	sel, err := New(testConfig(50)).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Empty(t, sel)
}

func TestSolveInvalidRates(t *testing.T) {
	inst, err := knapsack.NewInstance([]float64{60}, []float64{10})
	require.NoError(t, err)

	bad := []func(*Config){
		func(c *Config) { c.CrossoverRate = -0.1 },
		func(c *Config) { c.CrossoverRate = 1.5 },
		func(c *Config) { c.MutationRate = -1 },
		func(c *Config) { c.MutationRate = 2 },
	}
	for _, mutate := range bad {
		cfg := testConfig(50)
		mutate(&cfg)

		_, err := New(cfg).Solve(context.Background(), inst)
		require.Error(t, err)
		assert.True(t, knapsack.IsInvalidInput(err))
	}
}

func TestSolveCancellation(t *testing.T) {
	inst, err := knapsack.NewInstance([]float64{60, 100}, []float64{10, 20})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(testConfig(50)).Solve(ctx, inst)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveOddPopulationSize(t *testing.T) {
	inst, err := knapsack.NewInstance([]float64{60, 100, 120}, []float64{10, 20, 30})
	require.NoError(t, err)

	cfg := testConfig(50)
	cfg.PopulationSize = 7

	sel, err := New(cfg).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.LessOrEqual(t, sel.TotalCost(inst), 50.0+1e-9)
}
