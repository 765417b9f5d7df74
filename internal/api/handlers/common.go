package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-twin/internal/analysis"
	"inventory-twin/internal/api/models"
	"inventory-twin/internal/data"
	"inventory-twin/internal/model"
	"inventory-twin/internal/simulation"
)

const periodLayout = "2006-01-02"

func abortWithError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// parseObservations converts request rows to a series. Unreadable quantities
// become NaN and surface later as warnings; unreadable periods are an error.
func parseObservations(in []models.ObservationInput) (model.HistoricalSeries, error) {
	out := make(model.HistoricalSeries, 0, len(in))
	for i, row := range in {
		period, err := parseRequestPeriod(row.Period)
		if err != nil {
			return nil, fmt.Errorf("observations[%d].period: %w", i, err)
		}
		out = append(out, model.Observation{Period: period, Quantity: data.ParseValue(row.Quantity)})
	}
	return out, nil
}

func parseRequestPeriod(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(periodLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q (expected YYYY-MM-DD)", s)
	}
	return t.UTC(), nil
}

// statusForError maps engine errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func echoScenario(s model.Scenario) models.ScenarioEcho {
	return models.ScenarioEcho{
		Horizon:        s.Horizon,
		SupplyCut:      s.SupplyCut,
		DemandSpike:    s.DemandSpike,
		ReserveRelease: s.ReserveRelease,
	}
}

func buildResponse(id string, res *simulation.Result, cached bool, opts models.SimulateOptions, floor float64, market analysis.Market) models.SimulateResponse {
	resp := models.SimulateResponse{
		ID:       id,
		Status:   string(res.Status),
		Reason:   string(res.Reason),
		Scenario: echoScenario(res.Scenario),
		Missing:  make([]string, 0, len(res.Missing)),
		Warnings: make([]models.WarningRow, 0, len(res.Warnings)),
		Cached:   cached,
	}
	if res.HasDrift {
		drift := res.Drift
		resp.Drift = &drift
	}
	for _, k := range res.Missing {
		resp.Missing = append(resp.Missing, string(k))
	}
	for _, w := range res.Warnings {
		row := models.WarningRow{Code: w.Code, Message: w.Message}
		if !w.Period.IsZero() {
			row.Period = w.Period.Format(periodLayout)
		}
		resp.Warnings = append(resp.Warnings, row)
	}
	if opts.Points() {
		resp.Points = make([]models.PointRow, 0, len(res.Points))
		for i, p := range res.Points {
			resp.Points = append(resp.Points, models.PointRow{
				Index:  i,
				Period: p.Period.Format(periodLayout),
				Kind:   string(p.Kind),
				Value:  p.Value,
			})
		}
	}
	if opts.Summary() {
		summary := analysis.Summarize(res, floor).WithMarket(market).Rounded(2)
		resp.Summary = &summary
	}
	return resp
}
