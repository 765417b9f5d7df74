package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-twin/internal/model"
)

func TestCombinations(t *testing.T) {
	combos := Combinations(3)
	require.Len(t, combos, 8)
	assert.Equal(t, model.Scenario{Horizon: 3}, combos[0])
	assert.Equal(t, model.Scenario{Horizon: 3, SupplyCut: true, DemandSpike: true, ReserveRelease: true}, combos[7])

	seen := map[model.Scenario]bool{}
	for _, c := range combos {
		seen[c] = true
	}
	assert.Len(t, seen, 8)
}

func TestRankScenarios(t *testing.T) {
	ranked, err := RankScenarios(testEngine(0), weekly(50, 150, 250), 2)
	require.NoError(t, err)
	require.Len(t, ranked, 8)

	ends := make([]float64, len(ranked))
	for i, r := range ranked {
		ends[i] = r.Summary.EndValue
	}
	assert.Equal(t, []float64{0, 45, 67.5, 300, 5994.5, 6045, 6067.5, 6300}, ends)

	assert.Equal(t, model.Scenario{Horizon: 2, SupplyCut: true, DemandSpike: true}, ranked[0].Scenario)
	assert.Equal(t, model.Scenario{Horizon: 2, ReserveRelease: true}, ranked[7].Scenario)
}

func TestRankScenariosInsufficient(t *testing.T) {
	_, err := RankScenarios(testEngine(0), weekly(50), 2)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
}
