package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"inventory-twin/internal/model"
)

func WriteCombinedCSV(path string, points []model.CombinedPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCombined(f, points); err != nil {
		return err
	}
	return f.Close()
}

// WriteCombined writes points as CSV with header index,period,kind,value.
func WriteCombined(out io.Writer, points []model.CombinedPoint) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"index", "period", "kind", "value"}); err != nil {
		return err
	}
	for i, p := range points {
		row := []string{
			strconv.Itoa(i),
			fmtPeriod(p.Period),
			string(p.Kind),
			fmtFloat(p.Value),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtPeriod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
