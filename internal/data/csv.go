package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"

	"inventory-twin/internal/model"
)

// LoadSeriesCSV reads a two-column period,quantity file. A header row is
// optional. Rows with an unreadable period are skipped; unreadable quantities
// are kept as NaN.
func LoadSeriesCSV(path string) (model.HistoricalSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeriesCSV(f)
}

// ReadSeriesCSV is LoadSeriesCSV over an arbitrary reader.
func ReadSeriesCSV(r io.Reader) (model.HistoricalSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out model.HistoricalSeries
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: expected period,quantity got %d fields", line, len(rec))
		}
		period, err := parsePeriod(rec[0])
		if err != nil {
			continue
		}
		q := parseQuantity(rec[1])
		if math.IsInf(q, 0) {
			q = math.NaN()
		}
		out = append(out, model.Observation{Period: period, Quantity: q})
	}
	return out, nil
}
