package scenario

import (
	"fmt"
	"math"
	"time"

	"inventory-twin/internal/model"
)

// Change returns the inventory change for step (0-based) given the base drift.
// It depends only on its arguments.
func (e Effects) Change(step int, drift float64, s model.Scenario) float64 {
	change := drift
	if s.SupplyCut {
		change = -math.Abs(change * e.SupplyCut.At(step))
	}
	if s.DemandSpike {
		change = -math.Abs(change * e.DemandSpike.At(step))
	}
	if s.ReserveRelease {
		change += e.ReleasePerPeriod
	}
	return change
}

// Clamp applies the inventory floor.
func (e Effects) Clamp(v float64) float64 {
	if v < e.Floor {
		return e.Floor
	}
	return v
}

// state is the accumulator threaded through the projection fold.
type state struct {
	value  float64
	period time.Time
}

// Project walks forward s.Horizon periods from the last historical period,
// starting at start (the last trend value) and adding Change each step.
// Each emitted value is clamped to the floor and the clamped value is
// carried into the next step.
func Project(last time.Time, start, drift float64, s model.Scenario, e Effects) ([]model.Point, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidParameter, err)
	}

	out := make([]model.Point, 0, s.Horizon)
	acc := state{value: start, period: last}
	for i := 0; i < s.Horizon; i++ {
		acc = step(acc, i, drift, s, e)
		out = append(out, model.Point{Period: acc.period, Value: acc.value})
	}
	return out, nil
}

func step(prev state, i int, drift float64, s model.Scenario, e Effects) state {
	return state{
		value:  e.Clamp(prev.value + e.Change(i, drift, s)),
		period: prev.period.Add(e.Cadence),
	}
}
