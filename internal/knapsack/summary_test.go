package knapsack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummary(t *testing.T) {
	s := BuildSummary("dp", map[string]interface{}{"resolution": 0.25}, 10,
		[]float64{20, 30}, []float64{100, 120}, 1500*time.Millisecond)

	assert.Equal(t, "dp", s.Algorithm)
	assert.Equal(t, 2, s.SelectedCases)
	assert.Equal(t, 10, s.CandidateCases)
	assert.InDelta(t, 0.2, s.SelectionRate, 1e-12)
	assert.InDelta(t, 50.0, s.TotalHours, 1e-12)
	assert.InDelta(t, 220.0, s.TotalValue, 1e-12)
	assert.InDelta(t, 4.4, s.ValuePerHour, 1e-12)
	assert.InDelta(t, 110.0, s.AvgValuePerCase, 1e-12)
	assert.InDelta(t, 25.0, s.AvgHoursPerCase, 1e-12)
	assert.InDelta(t, 1.5, s.ElapsedSeconds, 1e-12)
}

func TestBuildSummaryEmptySelection(t *testing.T) {
	s := BuildSummary("greedy", nil, 0, nil, nil, 0)

	assert.Equal(t, 0, s.SelectedCases)
	assert.Equal(t, 0, s.CandidateCases)
	assert.Zero(t, s.SelectionRate, "zero candidates must not divide")
	assert.Zero(t, s.ValuePerHour)
	assert.Zero(t, s.AvgValuePerCase)
	assert.Zero(t, s.AvgHoursPerCase)
}

func TestRankByRatio(t *testing.T) {
	inst := &Instance{
		Values: []float64{60, 100, 120, 50},
		Costs:  []float64{10, 20, 30, 10},
	}
	// Ratios: 6, 5, 4, 5. The two 5s keep ascending index order.
	assert.Equal(t, []int{0, 1, 3, 2}, RankByRatio(inst))
}
