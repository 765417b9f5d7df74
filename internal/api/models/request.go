package models

import (
	"encoding/json"

	"inventory-twin/internal/config"
)

// SimulateRequest represents the request body for POST /api/v1/simulate
type SimulateRequest struct {
	Observations []ObservationInput `json:"observations" binding:"required,dive"`
	Scenario     ScenarioInput      `json:"scenario" binding:"required"`
	Overrides    *config.Overrides  `json:"overrides,omitempty"`
	Options      SimulateOptions    `json:"options,omitempty"`
}

// ObservationInput is one weekly reading. Quantity may be a number, a
// numeric string or null; anything unreadable is reported as a warning.
type ObservationInput struct {
	Period   string          `json:"period" binding:"required"` // YYYY-MM-DD or RFC 3339
	Quantity json.RawMessage `json:"quantity"`
}

// ScenarioInput selects the horizon and the active effects.
// The three flags must be present; there is no implicit default.
type ScenarioInput struct {
	Horizon        int   `json:"horizon"`
	SupplyCut      *bool `json:"supply_cut" binding:"required"`
	DemandSpike    *bool `json:"demand_spike" binding:"required"`
	ReserveRelease *bool `json:"reserve_release" binding:"required"`
}

// SimulateOptions controls the response shape.
type SimulateOptions struct {
	IncludePoints  *bool `json:"include_points,omitempty"`  // default: true
	IncludeSummary *bool `json:"include_summary,omitempty"` // default: true
}

func (o SimulateOptions) Points() bool  { return o.IncludePoints == nil || *o.IncludePoints }
func (o SimulateOptions) Summary() bool { return o.IncludeSummary == nil || *o.IncludeSummary }

// EIASimulateQuery is the query string of GET /api/v1/simulate/eia.
// As with ScenarioInput, the three flags must be present.
type EIASimulateQuery struct {
	Region         string `form:"region"`
	Horizon        int    `form:"horizon"`
	SupplyCut      *bool  `form:"supply_cut" binding:"required"`
	DemandSpike    *bool  `form:"demand_spike" binding:"required"`
	ReserveRelease *bool  `form:"reserve_release" binding:"required"`
	Years          int    `form:"years"` // default: config lookback_years
}

// CompareRequest runs every flag combination over one series.
type CompareRequest struct {
	Observations []ObservationInput `json:"observations" binding:"required,dive"`
	Horizon      int                `json:"horizon"`
	Overrides    *config.Overrides  `json:"overrides,omitempty"`
}
