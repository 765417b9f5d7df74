package simulation

import (
	"fmt"
	"log/slog"

	"inventory-twin/internal/model"
	"inventory-twin/internal/scenario"
	"inventory-twin/internal/trend"
)

// Engine runs the trend -> projection -> composition pipeline.
// It holds configuration only, so one Engine may serve concurrent callers.
type Engine struct {
	Window  int
	Effects scenario.Effects
	Logger  *slog.Logger
}

// New returns an engine with the reference constants.
func New() *Engine {
	return &Engine{
		Window:  trend.DefaultWindow,
		Effects: scenario.DefaultEffects(),
	}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Run simulates one scenario over history. The returned Result is never
// nil. The error, when set, wraps model.ErrInvalidParameter or
// model.ErrInsufficientData and matches Result.Reason.
func (e *Engine) Run(history model.HistoricalSeries, s model.Scenario) (*Result, error) {
	res := &Result{Scenario: s, Points: []model.CombinedPoint{}}

	if err := s.Validate(); err != nil {
		return res.fail(err, model.Kinds())
	}
	if e.Window < 1 {
		return res.fail(fmt.Errorf("%w: window must be >= 1, got %d", model.ErrInvalidParameter, e.Window), model.Kinds())
	}
	if err := e.Effects.Validate(); err != nil {
		return res.fail(fmt.Errorf("%w: %v", model.ErrInvalidParameter, err), model.Kinds())
	}

	clean, dropped := trend.Sanitize(history)
	for _, o := range dropped {
		res.Warnings = append(res.Warnings, model.Warning{
			Code:    model.WarningNonNumeric,
			Period:  o.Period,
			Message: "quantity is not a finite number; observation dropped",
		})
	}
	if len(dropped) > 0 {
		e.logger().Warn("dropped non-numeric observations",
			"dropped", len(dropped), "kept", len(clean))
	}

	tr, err := trend.MovingAverage(clean, e.Window)
	if err != nil {
		// Nothing to project from; hand back an empty, typed result.
		e.logger().Info("simulation skipped", "reason", model.ReasonInsufficientData,
			"observations", len(clean), "window", e.Window)
		return res.fail(err, model.Kinds())
	}
	res.History = clean
	res.Trend = tr

	drift, err := trend.Drift(tr)
	if err != nil {
		c := Compose(clean, tr, nil)
		res.Points = c.Points
		return res.fail(err, c.Missing)
	}
	res.Drift = drift
	res.HasDrift = true

	lastPeriod := clean[len(clean)-1].Period
	start := tr[len(tr)-1].Value
	sim, err := scenario.Project(lastPeriod, start, drift, s, e.Effects)
	if err != nil {
		return res.fail(err, model.Kinds())
	}
	res.Simulated = sim

	c := Compose(clean, tr, sim)
	res.Points = c.Points
	res.Missing = c.Missing
	res.Status = StatusCompleted
	return res, nil
}

func (r *Result) fail(err error, missing []model.Kind) (*Result, error) {
	r.Reason = model.ReasonFor(err)
	r.Status = statusFor(r.Reason)
	r.Missing = missing
	return r, err
}
