// Package trend derives a smoothed trendline and a per-period drift from a
// historical inventory series.
package trend

import (
	"errors"
	"fmt"
	"sort"

	"inventory-twin/internal/model"
)

// DefaultWindow is the moving-average width in periods (13 weeks ~ one quarter).
const DefaultWindow = 13

var ErrInvalidWindow = errors.New("moving average window must be >= 1")

// Sanitize returns a copy of series with non-finite quantities removed and
// the remaining observations sorted by period ascending. The dropped
// observations are returned so the caller can report them.
// The input slice is never modified.
func Sanitize(series model.HistoricalSeries) (model.HistoricalSeries, []model.Observation) {
	clean := make(model.HistoricalSeries, 0, len(series))
	var dropped []model.Observation
	for _, o := range series {
		if !o.Valid() {
			dropped = append(dropped, o)
			continue
		}
		clean = append(clean, o)
	}
	sort.SliceStable(clean, func(i, j int) bool {
		return clean[i].Period.Before(clean[j].Period)
	})
	return clean, dropped
}

// MovingAverage computes a trailing simple moving average.
// The result has max(0, n-window+1) points; point k is the mean of
// quantities [k, k+window) and carries the period of the last of them.
// When n < window the result is empty and ErrInsufficientData is returned.
func MovingAverage(series model.HistoricalSeries, window int) ([]model.Point, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}
	n := len(series)
	if n < window {
		return []model.Point{}, fmt.Errorf("%w: %d observations, moving average needs %d",
			model.ErrInsufficientData, n, window)
	}

	out := make([]model.Point, 0, n-window+1)
	for end := window; end <= n; end++ {
		// Sum each window from scratch so results do not depend on
		// accumulated rounding from earlier windows.
		sum := 0.0
		for _, o := range series[end-window : end] {
			sum += o.Quantity
		}
		out = append(out, model.Point{
			Period: series[end-1].Period,
			Value:  sum / float64(window),
		})
	}
	return out, nil
}

// Drift is the average per-period change over the whole trendline:
// (last - first) / len(points). It needs at least two points.
func Drift(points []model.Point) (float64, error) {
	if len(points) < 2 {
		return 0, fmt.Errorf("%w: drift needs at least 2 trend points, got %d",
			model.ErrInsufficientData, len(points))
	}
	first := points[0].Value
	last := points[len(points)-1].Value
	return (last - first) / float64(len(points)), nil
}
