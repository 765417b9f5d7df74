package analysis

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"inventory-twin/internal/model"
	"inventory-twin/internal/simulation"
)

// Summary holds the headline numbers of one simulation run.
type Summary struct {
	Status   simulation.Status
	Scenario model.Scenario
	Active   []string

	HasHistory     bool
	LatestPeriod   time.Time
	LatestQuantity float64

	HasTrend   bool
	TrendStart float64
	TrendEnd   float64

	HasDrift bool
	Drift    float64

	HasProjection bool
	EndPeriod     time.Time
	EndValue      float64
	MinValue      float64
	// Change and ChangePct compare EndValue against TrendEnd.
	Change    float64
	ChangePct float64

	// FloorPeriod is the first simulated period pinned at the floor, if any.
	FloorPeriod *time.Time

	Counts map[model.Kind]int

	// LatestPrice is the spot price on LatestPeriod.
	HasPrice    bool
	LatestPrice float64

	// USTotal is the national reading at the newest report date, whatever
	// region the run covers.
	HasUSTotal    bool
	USTotalPeriod time.Time
	USTotal       float64
}

// Market is reference data reported next to a run.
type Market struct {
	Prices  model.HistoricalSeries
	USTotal *model.Observation
}

// WithMarket attaches the price matching LatestPeriod and the national total.
// A price for any other period is not used.
func (s Summary) WithMarket(m Market) Summary {
	if s.HasHistory {
		for _, p := range m.Prices {
			if p.Valid() && p.Period.Equal(s.LatestPeriod) {
				s.HasPrice = true
				s.LatestPrice = p.Quantity
				break
			}
		}
	}
	if m.USTotal != nil && m.USTotal.Valid() {
		s.HasUSTotal = true
		s.USTotalPeriod = m.USTotal.Period
		s.USTotal = m.USTotal.Quantity
	}
	return s
}

// Summarize reduces a Result to its headline numbers. floor is the engine
// floor used for the run.
func Summarize(res *simulation.Result, floor float64) Summary {
	s := Summary{Counts: map[model.Kind]int{}}
	for _, k := range model.Kinds() {
		s.Counts[k] = 0
	}
	if res == nil {
		return s
	}
	s.Status = res.Status
	s.Scenario = res.Scenario
	s.Active = res.Scenario.Active()
	for _, p := range res.Points {
		s.Counts[p.Kind]++
	}

	if last, ok := res.History.Last(); ok {
		s.HasHistory = true
		s.LatestPeriod = last.Period
		s.LatestQuantity = last.Quantity
	}
	if n := len(res.Trend); n > 0 {
		s.HasTrend = true
		s.TrendStart = res.Trend[0].Value
		s.TrendEnd = res.Trend[n-1].Value
	}
	if res.HasDrift {
		s.HasDrift = true
		s.Drift = res.Drift
	}
	if n := len(res.Simulated); n > 0 {
		s.HasProjection = true
		s.EndPeriod = res.Simulated[n-1].Period
		s.EndValue = res.Simulated[n-1].Value
		s.MinValue = math.Inf(1)
		for _, p := range res.Simulated {
			if p.Value < s.MinValue {
				s.MinValue = p.Value
			}
			if s.FloorPeriod == nil && p.Value <= floor {
				period := p.Period
				s.FloorPeriod = &period
			}
		}
		s.Change = s.EndValue - s.TrendEnd
		if s.TrendEnd != 0 {
			s.ChangePct = s.Change / s.TrendEnd * 100
		}
	}
	return s
}

// RoundedSummary is Summary formatted for display, with decimals fixed.
type RoundedSummary struct {
	Status         simulation.Status  `json:"status"`
	Active         []string           `json:"active_scenarios"`
	LatestPeriod   string             `json:"latest_period,omitempty"`
	LatestQuantity *decimal.Decimal   `json:"latest_quantity,omitempty"`
	TrendStart     *decimal.Decimal   `json:"trend_start,omitempty"`
	TrendEnd       *decimal.Decimal   `json:"trend_end,omitempty"`
	Drift          *decimal.Decimal   `json:"drift,omitempty"`
	Horizon        int                `json:"horizon"`
	EndPeriod      string             `json:"end_period,omitempty"`
	EndValue       *decimal.Decimal   `json:"end_value,omitempty"`
	MinValue       *decimal.Decimal   `json:"min_value,omitempty"`
	Change         *decimal.Decimal   `json:"change,omitempty"`
	ChangePct      *decimal.Decimal   `json:"change_pct,omitempty"`
	FloorPeriod    string             `json:"floor_period,omitempty"`
	Counts         map[model.Kind]int `json:"counts"`
	LatestPrice    *decimal.Decimal   `json:"latest_price,omitempty"`
	USTotal        *decimal.Decimal   `json:"us_total,omitempty"`
	USTotalPeriod  string             `json:"us_total_period,omitempty"`
}

// Rounded returns the summary with quantities to places decimal places and
// the percent change to one place.
func (s Summary) Rounded(places int32) RoundedSummary {
	out := RoundedSummary{
		Status:  s.Status,
		Active:  s.Active,
		Horizon: s.Scenario.Horizon,
		Counts:  s.Counts,
	}
	if out.Active == nil {
		out.Active = []string{}
	}
	if s.HasHistory {
		out.LatestPeriod = formatDate(s.LatestPeriod)
		out.LatestQuantity = round(s.LatestQuantity, places)
	}
	if s.HasTrend {
		out.TrendStart = round(s.TrendStart, places)
		out.TrendEnd = round(s.TrendEnd, places)
	}
	if s.HasDrift {
		out.Drift = round(s.Drift, places)
	}
	if s.HasProjection {
		out.EndPeriod = formatDate(s.EndPeriod)
		out.EndValue = round(s.EndValue, places)
		out.MinValue = round(s.MinValue, places)
		out.Change = round(s.Change, places)
		out.ChangePct = round(s.ChangePct, 1)
	}
	if s.FloorPeriod != nil {
		out.FloorPeriod = formatDate(*s.FloorPeriod)
	}
	if s.HasPrice {
		out.LatestPrice = round(s.LatestPrice, 2)
	}
	if s.HasUSTotal {
		out.USTotal = round(s.USTotal, places)
		out.USTotalPeriod = formatDate(s.USTotalPeriod)
	}
	return out
}

func round(v float64, places int32) *decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	d := decimal.NewFromFloat(v).Round(places)
	return &d
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
