package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-twin/internal/model"
)

var last = time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

// noFloor keeps the reference escalation constants but disables the clamp so
// small hand-checked numbers are not lifted to 100000.
func noFloor() Effects {
	e := DefaultEffects()
	e.Floor = 0
	return e
}

func values(points []model.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

func TestProjectScenarios(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		drift    float64
		scenario model.Scenario
		want     []float64
	}{
		{
			name:     "pure drift",
			start:    200,
			drift:    50,
			scenario: model.Scenario{Horizon: 2},
			want:     []float64{250, 300},
		},
		{
			name:     "supply cut escalates and forces decline",
			start:    200,
			drift:    50,
			scenario: model.Scenario{Horizon: 2, SupplyCut: true},
			want:     []float64{125, 45}, // -75, then -80
		},
		{
			name:     "demand spike",
			start:    200,
			drift:    50,
			scenario: model.Scenario{Horizon: 2, DemandSpike: true},
			want:     []float64{135, 67.5}, // -65, then -67.5
		},
		{
			name:     "supply cut then demand spike",
			start:    1000,
			drift:    50,
			scenario: model.Scenario{Horizon: 2, SupplyCut: true, DemandSpike: true},
			want:     []float64{902.5, 794.5}, // -(75*1.3), then -(80*1.35)
		},
		{
			name:     "release added after multipliers",
			start:    1000,
			drift:    50,
			scenario: model.Scenario{Horizon: 1, SupplyCut: true, DemandSpike: true, ReserveRelease: true},
			want:     []float64{3902.5}, // -97.5 + 3000
		},
		{
			name:     "release only",
			start:    1000,
			drift:    -10,
			scenario: model.Scenario{Horizon: 2, ReserveRelease: true},
			want:     []float64{3990, 6980},
		},
		{
			name:     "negative drift stays negative under supply cut",
			start:    1000,
			drift:    -50,
			scenario: model.Scenario{Horizon: 1, SupplyCut: true},
			want:     []float64{925},
		},
		{
			name:     "zero drift is flat",
			start:    1000,
			drift:    0,
			scenario: model.Scenario{Horizon: 3},
			want:     []float64{1000, 1000, 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Project(last, tt.start, tt.drift, tt.scenario, noFloor())
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			assert.InDeltaSlice(t, tt.want, values(got), 1e-9)
		})
	}
}

func TestCompositionOrderIsNotCommutative(t *testing.T) {
	e := noFloor()
	s := model.Scenario{Horizon: 1, SupplyCut: true, DemandSpike: true, ReserveRelease: true}

	got := e.Change(0, 50, s)
	releaseFirst := -((50 + e.ReleasePerPeriod) * e.SupplyCut.At(0) * e.DemandSpike.At(0))

	assert.InDelta(t, -97.5+3000, got, 1e-9)
	assert.NotEqual(t, releaseFirst, got)
}

func TestProjectClampEngagesOnlyBelowFloor(t *testing.T) {
	e := DefaultEffects()
	got, err := Project(last, 100100, -60, model.Scenario{Horizon: 3}, e)
	require.NoError(t, err)

	// 100040 is above the floor and reported as-is; 99980 is lifted to the
	// floor, and the clamped value is what the next step builds on.
	assert.InDeltaSlice(t, []float64{100040, 100000, 100000}, values(got), 1e-9)
}

func TestProjectNeverBelowFloor(t *testing.T) {
	e := DefaultEffects()
	flags := []bool{false, true}
	for _, sc := range flags {
		for _, ds := range flags {
			for _, rr := range flags {
				s := model.Scenario{Horizon: 52, SupplyCut: sc, DemandSpike: ds, ReserveRelease: rr}
				for _, drift := range []float64{-250000, -1, 0, 1, 250000} {
					got, err := Project(last, 150000, drift, s, e)
					require.NoError(t, err)
					for _, p := range got {
						assert.GreaterOrEqual(t, p.Value, e.Floor)
					}
				}
			}
		}
	}
}

func TestProjectPureDriftIsArithmetic(t *testing.T) {
	got, err := Project(last, 400000, 1250.5, model.Scenario{Horizon: 20}, DefaultEffects())
	require.NoError(t, err)

	prev := 400000.0
	for _, p := range got {
		assert.InDelta(t, 1250.5, p.Value-prev, 1e-6)
		prev = p.Value
	}
}

func TestProjectPrefixStable(t *testing.T) {
	e := DefaultEffects()
	s := model.Scenario{Horizon: 5, SupplyCut: true, ReserveRelease: true}
	short, err := Project(last, 450000, -800, s, e)
	require.NoError(t, err)

	s.Horizon = 26
	long, err := Project(last, 450000, -800, s, e)
	require.NoError(t, err)

	assert.Equal(t, short, long[:len(short)])
}

func TestProjectPeriodsAreWeekly(t *testing.T) {
	got, err := Project(last, 200000, 10, model.Scenario{Horizon: 4}, DefaultEffects())
	require.NoError(t, err)
	for i, p := range got {
		assert.True(t, last.AddDate(0, 0, 7*(i+1)).Equal(p.Period), "period %d: %s", i, p.Period)
	}
}

func TestProjectRejectsBadHorizon(t *testing.T) {
	for _, h := range []int{0, -3} {
		got, err := Project(last, 200000, 10, model.Scenario{Horizon: h}, DefaultEffects())
		assert.ErrorIs(t, err, model.ErrInvalidParameter)
		assert.Nil(t, got)
	}
}

func TestProjectRejectsBadEffects(t *testing.T) {
	e := DefaultEffects()
	e.Cadence = 0
	_, err := Project(last, 200000, 10, model.Scenario{Horizon: 1}, e)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestProjectIsDeterministic(t *testing.T) {
	s := model.Scenario{Horizon: 30, SupplyCut: true, DemandSpike: true, ReserveRelease: true}
	a, err := Project(last, 420000, 333.3, s, DefaultEffects())
	require.NoError(t, err)
	b, err := Project(last, 420000, 333.3, s, DefaultEffects())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
