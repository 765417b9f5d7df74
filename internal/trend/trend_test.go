package trend

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-twin/internal/model"
)

var base = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

func weekly(values ...float64) model.HistoricalSeries {
	out := make(model.HistoricalSeries, len(values))
	for i, v := range values {
		out[i] = model.Observation{Period: base.AddDate(0, 0, 7*i), Quantity: v}
	}
	return out
}

func TestMovingAverageLength(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		window int
		want   int
	}{
		{"exact window", 13, 13, 1},
		{"two years", 104, 13, 92},
		{"window one", 5, 1, 5},
		{"window two", 3, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]float64, tt.n)
			for i := range values {
				values[i] = float64(i)
			}
			got, err := MovingAverage(weekly(values...), tt.window)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			assert.Equal(t, tt.n-tt.window+1, len(got))
		})
	}
}

func TestMovingAverageShortSeries(t *testing.T) {
	got, err := MovingAverage(weekly(1, 2, 3), DefaultWindow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInsufficientData))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMovingAverageInvalidWindow(t *testing.T) {
	_, err := MovingAverage(weekly(1, 2, 3), 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestMovingAverageValues(t *testing.T) {
	series := weekly(2, 4, 6, 8, 10)
	got, err := MovingAverage(series, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.InDelta(t, 4.0, got[0].Value, 1e-12)
	assert.InDelta(t, 6.0, got[1].Value, 1e-12)
	assert.InDelta(t, 8.0, got[2].Value, 1e-12)

	// Trailing average: each point carries the period of the newest input.
	assert.Equal(t, series[2].Period, got[0].Period)
	assert.Equal(t, series[4].Period, got[2].Period)
}

func TestSanitizeDropsNonFinite(t *testing.T) {
	series := weekly(1, math.NaN(), 3, math.Inf(1), 5)
	clean, dropped := Sanitize(series)

	assert.Len(t, clean, 3)
	assert.Len(t, dropped, 2)
	for _, o := range clean {
		assert.True(t, o.Valid())
	}
	// Input untouched.
	assert.True(t, math.IsNaN(series[1].Quantity))
	assert.Len(t, series, 5)
}

func TestSanitizeSortsWithoutMutatingInput(t *testing.T) {
	series := weekly(1, 2, 3)
	reversed := model.HistoricalSeries{series[2], series[0], series[1]}

	clean, _ := Sanitize(reversed)
	require.Len(t, clean, 3)
	assert.Equal(t, series[0].Period, clean[0].Period)
	assert.Equal(t, series[2].Period, clean[2].Period)
	assert.Equal(t, series[2].Period, reversed[0].Period)
}

func TestDrift(t *testing.T) {
	points := []model.Point{{Period: base, Value: 100}, {Period: base.AddDate(0, 0, 7), Value: 200}}
	d, err := Drift(points)
	require.NoError(t, err)
	assert.Equal(t, 50.0, d)
}

func TestDriftNeedsTwoPoints(t *testing.T) {
	for _, pts := range [][]model.Point{nil, {{Period: base, Value: 1}}} {
		_, err := Drift(pts)
		assert.ErrorIs(t, err, model.ErrInsufficientData)
	}
}
