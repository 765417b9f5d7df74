package data

import (
	"sort"
	"strings"
	"time"

	"inventory-twin/internal/model"
)

// USArea is the area-name of the national total row.
const USArea = "U.S."

// PriceSeries reduces spot price records to one price per period, sorted.
// The first readable value for a period wins; area names are ignored.
func PriceSeries(records []model.EIARecord) model.HistoricalSeries {
	seen := map[time.Time]bool{}
	out := make(model.HistoricalSeries, 0, len(records))
	for _, rec := range records {
		period, err := parsePeriod(rec.Period)
		if err != nil || seen[period] {
			continue
		}
		obs := model.Observation{Period: period, Quantity: ParseValue(rec.Value)}
		if !obs.Valid() {
			continue
		}
		seen[period] = true
		out = append(out, obs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// PeriodRange returns the earliest and latest dated record.
func PeriodRange(records []model.EIARecord) (start, end time.Time, ok bool) {
	for _, rec := range records {
		p, err := parsePeriod(rec.Period)
		if err != nil {
			continue
		}
		if !ok || p.Before(start) {
			start = p
		}
		if !ok || p.After(end) {
			end = p
		}
		ok = true
	}
	return start, end, ok
}

// LatestUSTotal returns the national reading at the newest report date in
// records, regardless of which region is being simulated.
func LatestUSTotal(records []model.EIARecord) (model.Observation, bool) {
	_, latest, ok := PeriodRange(records)
	if !ok {
		return model.Observation{}, false
	}
	for _, rec := range records {
		if !strings.EqualFold(strings.TrimSpace(rec.AreaName), USArea) {
			continue
		}
		p, err := parsePeriod(rec.Period)
		if err != nil || !p.Equal(latest) {
			continue
		}
		obs := model.Observation{Period: p, Quantity: ParseValue(rec.Value)}
		if obs.Valid() {
			return obs, true
		}
	}
	return model.Observation{}, false
}
