package simulation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-twin/internal/model"
)

func TestComposeRecordsMissingSegments(t *testing.T) {
	trendPts := []model.Point{{Period: base, Value: 1}}

	c := Compose(nil, trendPts, nil)
	assert.Equal(t, []model.Kind{model.KindHistorical, model.KindSimulated}, c.Missing)
	require.Len(t, c.Points, 1)
	assert.Equal(t, model.KindTrendline, c.Points[0].Kind)
}

func TestComposeKeepsAppendOrder(t *testing.T) {
	history := weekly(5, 6)
	trendPts := []model.Point{{Period: history[1].Period, Value: 5.5}}
	sim := []model.Point{{Period: history[1].Period.AddDate(0, 0, 7), Value: 7}}

	c := Compose(history, trendPts, sim)
	require.Len(t, c.Points, 4)
	assert.Empty(t, c.Missing)

	want := []model.Kind{model.KindHistorical, model.KindHistorical, model.KindTrendline, model.KindSimulated}
	for i, k := range want {
		assert.Equal(t, k, c.Points[i].Kind)
	}
	// Trend point shares a period with a historical point; no merging happens.
	assert.True(t, c.Points[1].Period.Equal(c.Points[2].Period))
}

func TestFingerprint(t *testing.T) {
	e := New()
	history := ramp(20, 300000, 10)
	s := model.Scenario{Horizon: 12, SupplyCut: true}

	k1 := Fingerprint(history, s, e)
	assert.Equal(t, k1, Fingerprint(append(model.HistoricalSeries(nil), history...), s, e))
	assert.Len(t, k1, 64)

	s2 := s
	s2.ReserveRelease = true
	assert.NotEqual(t, k1, Fingerprint(history, s2, e))

	e2 := New()
	e2.Effects.Floor = 0
	assert.NotEqual(t, k1, Fingerprint(history, s, e2))

	h2 := append(model.HistoricalSeries(nil), history...)
	h2[3].Quantity++
	assert.NotEqual(t, k1, Fingerprint(h2, s, e))
}

func TestWriteCombined(t *testing.T) {
	res, err := smallEngine().Run(weekly(50, 150, 250), model.Scenario{Horizon: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCombined(&buf, res.Points))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+3+2+1)
	assert.Equal(t, "index,period,kind,value", lines[0])
	assert.Equal(t, "0,2023-03-10,Historical,50.000000", lines[1])
	assert.Equal(t, "5,2023-03-31,Simulated,250.000000", lines[6])
}
