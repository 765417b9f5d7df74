package data

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"inventory-twin/internal/model"
)

// notAvailable marks the aggregate row the EIA emits next to the regional ones.
const notAvailable = "NA"

// Regions lists the distinct area names in first-seen order.
func Regions(records []model.EIARecord) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range records {
		name := strings.TrimSpace(rec.AreaName)
		if name == "" || name == notAvailable || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// ToHistorical reduces raw records to one observation per period.
//
// Records are filtered to region (all named regions when region is empty),
// values from the same period are summed, and the result is sorted by period.
// A period whose values are all unparsable becomes a NaN observation so the
// engine can report it.
func ToHistorical(records []model.EIARecord, region string) model.HistoricalSeries {
	type bucket struct {
		sum   float64
		valid bool
	}
	buckets := map[time.Time]*bucket{}

	for _, rec := range records {
		name := strings.TrimSpace(rec.AreaName)
		if name == notAvailable {
			continue
		}
		if region != "" && !strings.EqualFold(name, region) {
			continue
		}
		period, err := parsePeriod(rec.Period)
		if err != nil {
			continue
		}
		b, ok := buckets[period]
		if !ok {
			b = &bucket{}
			buckets[period] = b
		}
		v := ParseValue(rec.Value)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		b.sum += v
		b.valid = true
	}

	out := make(model.HistoricalSeries, 0, len(buckets))
	for period, b := range buckets {
		q := b.sum
		if !b.valid {
			q = math.NaN()
		}
		out = append(out, model.Observation{Period: period, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// ParseValue accepts a JSON number or a numeric string. Anything else,
// including null, yields NaN.
func ParseValue(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return math.NaN()
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return math.NaN()
		}
		return parseQuantity(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return math.NaN()
	}
	return f
}

func parseQuantity(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
