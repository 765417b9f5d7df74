package model

import (
	"math"
	"time"
)

// Observation is one weekly inventory reading.
// Quantity is NaN when the upstream value could not be read as a number.
type Observation struct {
	Period   time.Time `json:"period"`
	Quantity float64   `json:"quantity"`
}

// Valid reports whether the quantity is a finite number.
func (o Observation) Valid() bool {
	return !math.IsNaN(o.Quantity) && !math.IsInf(o.Quantity, 0)
}

// HistoricalSeries is an ordered (period ascending) list of observations.
// It is owned by the caller; the engine only ever reads it.
type HistoricalSeries []Observation

// Last returns the final observation, or false when the series is empty.
func (s HistoricalSeries) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// Point is a derived value at a period (trend or simulated).
type Point struct {
	Period time.Time `json:"period"`
	Value  float64   `json:"value"`
}

// CombinedPoint is one row of the composed output, tagged by segment.
type CombinedPoint struct {
	Period time.Time `json:"period"`
	Value  float64   `json:"value"`
	Kind   Kind      `json:"kind"`
}
