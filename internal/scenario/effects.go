// Package scenario projects an inventory trend forward under named
// disruption and relief effects.
package scenario

import (
	"errors"
	"math"
	"time"
)

// Escalation is a severity factor that grows linearly with the step index:
// factor(i) = Base + i*Growth.
type Escalation struct {
	Base   float64 `json:"base" yaml:"base"`
	Growth float64 `json:"growth" yaml:"growth"`
}

func (e Escalation) At(step int) float64 {
	return e.Base + float64(step)*e.Growth
}

// Effects holds the named constants used by the projector.
//
// Per step i the change is built in a fixed order:
//  1. start from the historical drift
//  2. supply cut:     change = -|change * SupplyCut.At(i)|
//  3. demand spike:   change = -|change * DemandSpike.At(i)|
//  4. reserve release: change += ReleasePerPeriod
//
// The order matters; swapping 2/3 with 4 gives different numbers.
type Effects struct {
	SupplyCut        Escalation    `json:"supply_cut" yaml:"supply_cut"`
	DemandSpike      Escalation    `json:"demand_spike" yaml:"demand_spike"`
	ReleasePerPeriod float64       `json:"release_per_period" yaml:"release_per_period"`
	Floor            float64       `json:"floor" yaml:"floor"`
	Cadence          time.Duration `json:"cadence" yaml:"cadence"`
}

// Reference constants.
const (
	DefaultSupplyCutBase     = 1.5
	DefaultSupplyCutGrowth   = 0.1
	DefaultDemandSpikeBase   = 1.3
	DefaultDemandSpikeGrowth = 0.05
	DefaultReleasePerPeriod  = 3000.0
	DefaultFloor             = 100000.0
	DefaultCadence           = 7 * 24 * time.Hour
)

func DefaultEffects() Effects {
	return Effects{
		SupplyCut:        Escalation{Base: DefaultSupplyCutBase, Growth: DefaultSupplyCutGrowth},
		DemandSpike:      Escalation{Base: DefaultDemandSpikeBase, Growth: DefaultDemandSpikeGrowth},
		ReleasePerPeriod: DefaultReleasePerPeriod,
		Floor:            DefaultFloor,
		Cadence:          DefaultCadence,
	}
}

func (e Effects) Validate() error {
	if e.Cadence <= 0 {
		return errors.New("cadence must be > 0")
	}
	if e.Floor < 0 {
		return errors.New("floor must be >= 0")
	}
	if e.ReleasePerPeriod < 0 {
		return errors.New("release per period must be >= 0")
	}
	for _, f := range []float64{e.SupplyCut.Base, e.SupplyCut.Growth, e.DemandSpike.Base, e.DemandSpike.Growth, e.ReleasePerPeriod, e.Floor} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.New("effect constants must be finite")
		}
	}
	return nil
}
