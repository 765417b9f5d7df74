package simulation

import "inventory-twin/internal/model"

// Status is the outcome of a run. Keep values stable; they appear in API output.
type Status string

const (
	StatusCompleted        Status = "completed"
	StatusInsufficientData Status = "insufficient_data"
	StatusInvalidParameter Status = "invalid_parameter"
)

// Result is the primary artifact of a simulation run.
// It is always non-nil, even when the run could not complete; in that case
// Status/Reason say why and Points holds whatever segments were available.
type Result struct {
	Status   Status
	Reason   model.Reason
	Scenario model.Scenario

	// History is the sanitized, period-ordered copy of the input.
	History   model.HistoricalSeries
	Trend     []model.Point
	Simulated []model.Point

	// Drift is only meaningful when HasDrift is set.
	Drift    float64
	HasDrift bool

	Points   []model.CombinedPoint
	Missing  []model.Kind
	Warnings []model.Warning
}

func (r *Result) Completed() bool { return r != nil && r.Status == StatusCompleted }

// Segment returns the points of one kind, in output order.
func (r *Result) Segment(kind model.Kind) []model.CombinedPoint {
	if r == nil {
		return nil
	}
	var out []model.CombinedPoint
	for _, p := range r.Points {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func statusFor(reason model.Reason) Status {
	switch reason {
	case model.ReasonNone:
		return StatusCompleted
	case model.ReasonInsufficientData:
		return StatusInsufficientData
	default:
		return StatusInvalidParameter
	}
}
