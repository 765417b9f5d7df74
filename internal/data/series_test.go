package data

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-twin/internal/model"
)

func rec(period, area, value string) model.EIARecord {
	return model.EIARecord{Period: period, AreaName: area, Value: json.RawMessage(value)}
}

func TestRegions(t *testing.T) {
	records := []model.EIARecord{
		rec("2025-02-28", "PADD 2", `1`),
		rec("2025-02-28", "NA", `1`),
		rec("2025-02-28", "PADD 3", `1`),
		rec("2025-02-21", "PADD 2", `1`),
		rec("2025-02-21", "", `1`),
	}
	assert.Equal(t, []string{"PADD 2", "PADD 3"}, Regions(records))
}

func TestToHistorical(t *testing.T) {
	records := []model.EIARecord{
		rec("2025-02-28", "PADD 2", `"120000"`),
		rec("2025-02-28", "PADD 3", `250000`),
		rec("2025-02-21", "PADD 2", `"119,500"`),
		rec("2025-02-21", "PADD 3", `null`),
		rec("2025-02-14", "PADD 2", `"n/a"`),
		rec("2025-02-14", "NA", `999`),
		rec("not-a-date", "PADD 2", `1`),
	}

	t.Run("all regions summed", func(t *testing.T) {
		got := ToHistorical(records, "")
		require.Len(t, got, 3)
		assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), got[0].Period)
		assert.True(t, math.IsNaN(got[0].Quantity))
		assert.Equal(t, 119500.0, got[1].Quantity)
		assert.Equal(t, 370000.0, got[2].Quantity)
	})

	t.Run("single region", func(t *testing.T) {
		got := ToHistorical(records, "padd 3")
		require.Len(t, got, 2)
		assert.True(t, math.IsNaN(got[0].Quantity))
		assert.Equal(t, 250000.0, got[1].Quantity)
	})

	t.Run("unknown region", func(t *testing.T) {
		assert.Empty(t, ToHistorical(records, "PADD 9"))
	})
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`" 1,200 "`, 1200},
		{`null`, math.NaN()},
		{`""`, math.NaN()},
		{`"abc"`, math.NaN()},
		{`true`, math.NaN()},
		{``, math.NaN()},
	}
	for _, tt := range tests {
		got := ParseValue(json.RawMessage(tt.raw))
		if math.IsNaN(tt.want) {
			assert.True(t, math.IsNaN(got), "raw %q", tt.raw)
			continue
		}
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

func TestReadSeriesCSV(t *testing.T) {
	in := "period,quantity\n2025-01-03,100\n2025-01-10,abc\nbad,5\n2025-01-17, 300\n"
	got, err := ReadSeriesCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 100.0, got[0].Quantity)
	assert.True(t, math.IsNaN(got[1].Quantity))
	assert.Equal(t, 300.0, got[2].Quantity)
}

func TestReadSeriesCSVShortRow(t *testing.T) {
	_, err := ReadSeriesCSV(strings.NewReader("2025-01-03\n"))
	assert.Error(t, err)
}

func TestSaveLoadEIAJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stocks.json")
	var resp model.EIAResponse
	require.NoError(t, json.Unmarshal([]byte(stocksBody), &resp))

	require.NoError(t, SaveEIAJSON(path, &resp))
	loaded, err := LoadEIAJSON(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Response.Data, 4)
	assert.Equal(t, 370000.0, ToHistorical(loaded.Response.Data, "")[1].Quantity)
}

func TestLoadEIAJSONMissing(t *testing.T) {
	_, err := LoadEIAJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRegionCatalogue(t *testing.T) {
	list := DefaultRegions()
	r, ok := list.Find("padd 2")
	require.True(t, ok)
	assert.Equal(t, "R20", r.ID)
	_, ok = list.Find("R99")
	assert.False(t, ok)

	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, SaveRegions(list, path))
	loaded, err := LoadRegions(path)
	require.NoError(t, err)
	assert.Equal(t, list.Regions, loaded.Regions)

	t.Setenv("REGIONS_FILE", "/tmp/x.json")
	assert.Equal(t, "/tmp/x.json", GetDefaultRegionsPath())
}

func TestPriceSeries(t *testing.T) {
	records := []model.EIARecord{
		{Period: "2025-02-28", Value: json.RawMessage(`69.76`)},
		{Period: "2025-02-21", Value: json.RawMessage(`"71.2"`)},
		{Period: "2025-02-28", Value: json.RawMessage(`1`)},
		{Period: "2025-02-14", Value: json.RawMessage(`null`)},
		{Period: "bad", Value: json.RawMessage(`5`)},
	}
	got := PriceSeries(records)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC), got[0].Period)
	assert.Equal(t, 71.2, got[0].Quantity)
	assert.Equal(t, 69.76, got[1].Quantity)
}

func TestPeriodRange(t *testing.T) {
	_, _, ok := PeriodRange(nil)
	assert.False(t, ok)

	start, end, ok := PeriodRange([]model.EIARecord{
		{Period: "2025-02-21"}, {Period: "x"}, {Period: "2025-02-28"}, {Period: "2024-12-27"},
	})
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), end)
}

func TestLatestUSTotal(t *testing.T) {
	records := []model.EIARecord{
		{Period: "2025-02-28", AreaName: "PADD 2", Value: json.RawMessage(`"120000"`)},
		{Period: "2025-02-28", AreaName: "U.S.", Value: json.RawMessage(`"433612"`)},
		{Period: "2025-02-21", AreaName: "U.S.", Value: json.RawMessage(`"430000"`)},
	}
	obs, ok := LatestUSTotal(records)
	require.True(t, ok)
	assert.Equal(t, 433612.0, obs.Quantity)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), obs.Period)

	// The national row must be present at the newest report date.
	_, ok = LatestUSTotal(records[:1])
	assert.False(t, ok)
	_, ok = LatestUSTotal(append([]model.EIARecord{{Period: "2025-03-07", AreaName: "PADD 3", Value: json.RawMessage(`1`)}}, records...))
	assert.False(t, ok)
}

func TestRegionsFromRecords(t *testing.T) {
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	list := RegionsFromRecords([]model.EIARecord{
		{AreaName: "PADD 3", Duoarea: "R30"},
		{AreaName: "NA", Duoarea: "NUS"},
		{AreaName: "Gulf Special", Duoarea: "R3X"},
		{AreaName: "PADD 3", Duoarea: "R30"},
	}, "EPC0", updated)

	assert.Equal(t, "EPC0", list.Product)
	assert.Equal(t, "2025-03-01T12:00:00Z", list.UpdatedAt)
	require.Len(t, list.Regions, 2)
	assert.Equal(t, Region{ID: "R30", Name: "PADD 3", Desc: "Gulf Coast"}, list.Regions[0])
	assert.Equal(t, Region{ID: "R3X", Name: "Gulf Special"}, list.Regions[1])
}
