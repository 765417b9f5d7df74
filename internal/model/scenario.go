package model

import "fmt"

// Scenario selects the projection horizon and which named effects apply.
// It is immutable for the duration of a run.
type Scenario struct {
	// Horizon is the number of future periods to project (>= 1).
	Horizon int `json:"horizon" yaml:"horizon"`

	SupplyCut      bool `json:"supply_cut" yaml:"supply_cut"`
	DemandSpike    bool `json:"demand_spike" yaml:"demand_spike"`
	ReserveRelease bool `json:"reserve_release" yaml:"reserve_release"`
}

func (s Scenario) Validate() error {
	if s.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be >= 1, got %d", ErrInvalidParameter, s.Horizon)
	}
	return nil
}

// Active returns the names of the enabled effects in application order.
func (s Scenario) Active() []string {
	out := make([]string, 0, 3)
	if s.SupplyCut {
		out = append(out, "supply_cut")
	}
	if s.DemandSpike {
		out = append(out, "demand_spike")
	}
	if s.ReserveRelease {
		out = append(out, "reserve_release")
	}
	return out
}
