package analysis

import (
	"sort"

	"inventory-twin/internal/model"
	"inventory-twin/internal/simulation"
)

// RankedScenario is one flag combination and how its projection ended.
type RankedScenario struct {
	Scenario model.Scenario
	Summary  Summary
}

// Combinations returns all eight flag settings for horizon, baseline first.
func Combinations(horizon int) []model.Scenario {
	out := make([]model.Scenario, 0, 8)
	for mask := 0; mask < 8; mask++ {
		out = append(out, model.Scenario{
			Horizon:        horizon,
			SupplyCut:      mask&1 != 0,
			DemandSpike:    mask&2 != 0,
			ReserveRelease: mask&4 != 0,
		})
	}
	return out
}

// RankScenarios runs every flag combination over history and orders them by
// projected end value, lowest first. Ties keep combination order.
// The first error (which is the same for every combination when the history
// is too short) is returned with no rankings.
func RankScenarios(engine *simulation.Engine, history model.HistoricalSeries, horizon int) ([]RankedScenario, error) {
	combos := Combinations(horizon)
	out := make([]RankedScenario, 0, len(combos))
	for _, sc := range combos {
		res, err := engine.Run(history, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, RankedScenario{
			Scenario: sc,
			Summary:  Summarize(res, engine.Effects.Floor),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Summary.EndValue < out[j].Summary.EndValue
	})
	return out, nil
}
