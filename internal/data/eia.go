package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inventory-twin/internal/cache"
	"inventory-twin/internal/model"
)

const (
	// DefaultEIABaseURL is the public EIA v2 API host.
	DefaultEIABaseURL = "https://api.eia.gov"
	// WeeklyStocksPath is the weekly petroleum stocks dataset route.
	WeeklyStocksPath = "/v2/petroleum/stoc/wstk/data/"
	// DefaultProduct is commercial crude oil excluding the SPR.
	DefaultProduct = "EPC0"
	// SpotPricesPath is the petroleum spot price dataset route.
	SpotPricesPath = "/v2/petroleum/pri/spt/data/"
	// WTISeries is the Cushing, OK WTI spot price series.
	WTISeries = "RWTC"

	periodLayout = "2006-01-02"
	probeLength  = 5
	windowLength = 5000
)

// EIAClient fetches weekly inventory data from the EIA API.
type EIAClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Cache   *cache.TTL[*model.EIAResponse]
	Logger  *slog.Logger

	now func() time.Time
}

// NewEIAClient creates a new EIA API client.
// If baseURL is empty, defaults to DefaultEIABaseURL.
func NewEIAClient(apiKey string, baseURL string) *EIAClient {
	if baseURL == "" {
		baseURL = DefaultEIABaseURL
	}
	return &EIAClient{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// WeeklyStocksParams defines parameters for querying the weekly stocks dataset.
type WeeklyStocksParams struct {
	Product string    // e.g. "EPC0"
	Start   time.Time // optional, inclusive
	End     time.Time // optional, inclusive
	Offset  int
	Length  int // rows per page, EIA caps this at 5000
}

// WTIPriceParams defines parameters for querying the spot price dataset.
type WTIPriceParams struct {
	Series string // e.g. "RWTC"
	Start  time.Time
	End    time.Time
	Offset int
	Length int
}

// EIAError represents an error from the EIA API.
type EIAError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *EIAError) Error() string {
	return e.Message
}

func (c *EIAClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *EIAClient) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// QueryWeeklyStocks fetches one page of weekly stock records, newest first.
func (c *EIAClient) QueryWeeklyStocks(ctx context.Context, params WeeklyStocksParams) (*model.EIAResponse, error) {
	if params.Product == "" {
		params.Product = DefaultProduct
	}
	return c.query(ctx, dataset{path: WeeklyStocksPath, facet: "product", value: params.Product},
		params.Start, params.End, params.Offset, params.Length)
}

// QueryWTIPrices fetches one page of weekly WTI spot prices, newest first.
func (c *EIAClient) QueryWTIPrices(ctx context.Context, params WTIPriceParams) (*model.EIAResponse, error) {
	if params.Series == "" {
		params.Series = WTISeries
	}
	return c.query(ctx, dataset{path: SpotPricesPath, facet: "series", value: params.Series},
		params.Start, params.End, params.Offset, params.Length)
}

// dataset names one EIA v2 route and the facet that selects its series.
type dataset struct {
	path  string
	facet string
	value string
}

func (c *EIAClient) query(ctx context.Context, ds dataset, start, end time.Time, offset, length int) (*model.EIAResponse, error) {
	if c.APIKey == "" {
		return nil, &EIAError{Code: "MISSING_API_KEY", Message: "API key is required"}
	}
	if length <= 0 {
		length = windowLength
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return nil, fmt.Errorf("start must be before end")
	}

	log := c.logger().With("component", "eia", ds.facet, ds.value,
		"start", formatPeriod(start), "end", formatPeriod(end))

	cacheKey := fmt.Sprintf("%s|%s|%s|%s|%s|%d|%d", ds.path, ds.facet, ds.value,
		formatPeriod(start), formatPeriod(end), offset, length)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		log.Info("[EIA] cache hit", "records", len(cached.Response.Data))
		return cached, nil
	}

	u, err := url.Parse(c.BaseURL + ds.path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("frequency", "weekly")
	q.Set("data[0]", "value")
	q.Set("facets["+ds.facet+"][]", ds.value)
	if !start.IsZero() {
		q.Set("start", formatPeriod(start))
	}
	if !end.IsZero() {
		q.Set("end", formatPeriod(end))
	}
	q.Set("sort[0][column]", "period")
	q.Set("sort[0][direction]", "desc")
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(length))
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	log.Info("[EIA] request", "method", http.MethodGet, "path", u.Path, "length", length)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(started)
	if err != nil {
		log.Error("[EIA] request failed", "error", err, "duration", duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Info("[EIA] response", "status", resp.StatusCode, "duration", duration)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		log.Warn("[EIA] invalid API key", "status", resp.StatusCode)
		return nil, &EIAError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		log.Warn("[EIA] rate limit exceeded", "retry_after", retryAfter)
		return nil, &EIAError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		log.Warn("[EIA] upstream error", "status", resp.StatusCode)
		return nil, &EIAError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result model.EIAResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error("[EIA] decode failed", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Info("[EIA] success", "records", len(result.Response.Data))
	c.Cache.Set(cacheKey, &result)

	return &result, nil
}

// LatestPeriod asks for the newest few rows and returns the most recent
// report date.
func (c *EIAClient) LatestPeriod(ctx context.Context, product string) (time.Time, error) {
	resp, err := c.QueryWeeklyStocks(ctx, WeeklyStocksParams{Product: product, Length: probeLength})
	if err != nil {
		return time.Time{}, err
	}

	var latest time.Time
	for _, rec := range resp.Response.Data {
		p, err := parsePeriod(rec.Period)
		if err != nil {
			continue
		}
		if p.After(latest) {
			latest = p
		}
	}
	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no dated records returned for product %s", model.ErrInsufficientData, product)
	}
	return latest, nil
}

// LoadLookback fetches every record in [latest - years, latest]. When the
// latest period cannot be determined it falls back to today.
func (c *EIAClient) LoadLookback(ctx context.Context, product string, years int) (*model.EIAResponse, error) {
	if years < 1 {
		return nil, fmt.Errorf("%w: lookback years must be >= 1, got %d", model.ErrInvalidParameter, years)
	}

	end, err := c.LatestPeriod(ctx, product)
	if err != nil {
		var apiErr *EIAError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		c.logger().Warn("[EIA] latest period unavailable, using today", "error", err)
		end = c.clock().UTC().Truncate(24 * time.Hour)
	}
	start := end.AddDate(-years, 0, 0)

	return c.QueryWeeklyStocks(ctx, WeeklyStocksParams{
		Product: product,
		Start:   start,
		End:     end,
		Length:  windowLength,
	})
}

// LoadWTIPrices fetches the WTI spot prices for [start, end].
func (c *EIAClient) LoadWTIPrices(ctx context.Context, start, end time.Time) (*model.EIAResponse, error) {
	return c.QueryWTIPrices(ctx, WTIPriceParams{
		Series: WTISeries,
		Start:  start,
		End:    end,
		Length: windowLength,
	})
}

func formatPeriod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(periodLayout)
}

func parsePeriod(s string) (time.Time, error) {
	return time.Parse(periodLayout, strings.TrimSpace(s))
}
