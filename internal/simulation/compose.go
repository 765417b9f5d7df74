package simulation

import "inventory-twin/internal/model"

// Combined is the composed, tagged output plus the segments that were empty.
type Combined struct {
	Points  []model.CombinedPoint
	Missing []model.Kind
}

// Compose appends the historical, trend and simulated segments, in that
// order, into one tagged series. Segments are not merged by period;
// consumers draw each kind as its own trace.
func Compose(history model.HistoricalSeries, trend, simulated []model.Point) Combined {
	out := Combined{
		Points: make([]model.CombinedPoint, 0, len(history)+len(trend)+len(simulated)),
	}

	if len(history) == 0 {
		out.Missing = append(out.Missing, model.KindHistorical)
	}
	for _, o := range history {
		out.Points = append(out.Points, model.CombinedPoint{Period: o.Period, Value: o.Quantity, Kind: model.KindHistorical})
	}

	out.appendPoints(model.KindTrendline, trend)
	out.appendPoints(model.KindSimulated, simulated)
	return out
}

func (c *Combined) appendPoints(kind model.Kind, points []model.Point) {
	if len(points) == 0 {
		c.Missing = append(c.Missing, kind)
		return
	}
	for _, p := range points {
		c.Points = append(c.Points, model.CombinedPoint{Period: p.Period, Value: p.Value, Kind: kind})
	}
}
