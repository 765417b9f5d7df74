package models

import "inventory-twin/internal/analysis"

// SimulateResponse represents the result of a simulation run. It is also
// returned, with Error set, when the run could not complete.
type SimulateResponse struct {
	ID       string                   `json:"id,omitempty"`
	Status   string                   `json:"status"`
	Reason   string                   `json:"reason,omitempty"`
	Scenario ScenarioEcho             `json:"scenario"`
	Drift    *float64                 `json:"drift,omitempty"`
	Points   []PointRow               `json:"points,omitempty"`
	Missing  []string                 `json:"missing"`
	Warnings []WarningRow             `json:"warnings"`
	Summary  *analysis.RoundedSummary `json:"summary,omitempty"`
	Cached   bool                     `json:"cached"`
	Error    *ErrorDetail             `json:"error,omitempty"`
}

// ScenarioEcho repeats the scenario that was run.
type ScenarioEcho struct {
	Horizon        int  `json:"horizon"`
	SupplyCut      bool `json:"supply_cut"`
	DemandSpike    bool `json:"demand_spike"`
	ReserveRelease bool `json:"reserve_release"`
}

// PointRow is one row of the combined output.
type PointRow struct {
	Index  int     `json:"index"`
	Period string  `json:"period"`
	Kind   string  `json:"kind"` // "Historical", "Trendline", "Simulated"
	Value  float64 `json:"value"`
}

// WarningRow is a non-fatal data issue.
type WarningRow struct {
	Code    string `json:"code"`
	Period  string `json:"period,omitempty"`
	Message string `json:"message"`
}

// CompareResponse lists scenario combinations, lowest projected end first.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one combination
type ComparisonResult struct {
	Rank     int                     `json:"rank"`
	Scenario ScenarioEcho            `json:"scenario"`
	Summary  analysis.RoundedSummary `json:"summary"`
}

// ScenarioInfo describes one scenario flag and its constants
type ScenarioInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a tunable constant
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// RegionInfo represents a reporting region
type RegionInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
