package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-twin/internal/analysis"
	"inventory-twin/internal/api/models"
	"inventory-twin/internal/config"
	"inventory-twin/internal/data"
	"inventory-twin/internal/model"
)

// EIASource loads a lookback window of weekly stocks and the WTI spot
// prices for a date range.
type EIASource interface {
	LoadLookback(ctx context.Context, product string, years int) (*model.EIAResponse, error)
	LoadWTIPrices(ctx context.Context, start, end time.Time) (*model.EIAResponse, error)
}

// EIAHandler runs simulations over live EIA data
type EIAHandler struct {
	sim       *SimulateHandler
	cfg       config.EIAConfig
	serverKey string
	newSource func(apiKey string) EIASource
}

// NewEIAHandler creates a new EIA handler. serverKey is used when the
// caller does not send X-EIA-Key.
func NewEIAHandler(sim *SimulateHandler, cfg config.EIAConfig, serverKey string, newSource func(apiKey string) EIASource) *EIAHandler {
	return &EIAHandler{sim: sim, cfg: cfg, serverKey: serverKey, newSource: newSource}
}

// SimulateEIA handles GET /api/v1/simulate/eia
func (h *EIAHandler) SimulateEIA(c *gin.Context) {
	var q models.EIASimulateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	apiKey := c.GetHeader("X-EIA-Key")
	if apiKey == "" {
		apiKey = h.serverKey
	}
	if apiKey == "" {
		abortWithError(c, http.StatusUnauthorized, "MISSING_API_KEY",
			"EIA API key required: send X-EIA-Key or configure "+h.cfg.APIKeyEnv, nil)
		return
	}

	region := q.Region
	if region == "" {
		region = h.cfg.Region
	}
	years := q.Years
	if years == 0 {
		years = h.cfg.LookbackYears
	}

	source := h.newSource(apiKey)
	resp, err := source.LoadLookback(c.Request.Context(), h.cfg.Product, years)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	if resp == nil {
		resp = &model.EIAResponse{}
	}
	records := resp.Response.Data
	history := data.ToHistorical(records, region)
	h.sim.logger.Info("loaded EIA history", "region", region, "records", len(records), "periods", len(history))

	sc := model.Scenario{
		Horizon:        q.Horizon,
		SupplyCut:      *q.SupplyCut,
		DemandSpike:    *q.DemandSpike,
		ReserveRelease: *q.ReserveRelease,
	}
	h.sim.respond(c, "eia", history, sc, nil, models.SimulateOptions{}, h.market(c.Request.Context(), source, records))
}

// market gathers the national total and the WTI prices over the same window.
// A failed price lookup only drops the price from the summary.
func (h *EIAHandler) market(ctx context.Context, source EIASource, records []model.EIARecord) analysis.Market {
	var m analysis.Market
	if us, ok := data.LatestUSTotal(records); ok {
		m.USTotal = &us
	}
	start, end, ok := data.PeriodRange(records)
	if !ok {
		return m
	}
	prices, err := source.LoadWTIPrices(ctx, start, end)
	if err != nil {
		var apiErr *data.EIAError
		if errors.As(err, &apiErr) {
			upstreamErrors.WithLabelValues(apiErr.Code).Inc()
		}
		h.sim.logger.Warn("WTI prices unavailable", "start", start, "end", end, "error", err)
		return m
	}
	if prices != nil {
		m.Prices = data.PriceSeries(prices.Response.Data)
	}
	return m
}

func (h *EIAHandler) writeUpstreamError(c *gin.Context, err error) {
	var apiErr *data.EIAError
	if errors.As(err, &apiErr) {
		upstreamErrors.WithLabelValues(apiErr.Code).Inc()
		statusCode := http.StatusBadGateway
		switch apiErr.StatusCode {
		case http.StatusForbidden, http.StatusUnauthorized:
			statusCode = http.StatusUnauthorized
		case http.StatusTooManyRequests:
			statusCode = http.StatusTooManyRequests
		}
		abortWithError(c, statusCode, apiErr.Code, apiErr.Message, map[string]interface{}{
			"status_code": apiErr.StatusCode,
			"retry_after": apiErr.RetryAfter,
		})
		return
	}
	if errors.Is(err, model.ErrInvalidParameter) {
		abortWithError(c, http.StatusBadRequest, string(model.ReasonInvalidParameter), err.Error(), nil)
		return
	}
	upstreamErrors.WithLabelValues("DATA_FETCH_ERROR").Inc()
	abortWithError(c, http.StatusBadGateway, "DATA_FETCH_ERROR", err.Error(), nil)
}
