package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inventory-twin/internal/analysis"
	"inventory-twin/internal/api/models"
	"inventory-twin/internal/cache"
	"inventory-twin/internal/config"
	"inventory-twin/internal/model"
	"inventory-twin/internal/simulation"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	engine  *simulation.Engine
	results *cache.TTL[*simulation.Result]
	runs    *cache.TTL[*simulation.Result]
	logger  *slog.Logger
}

// NewSimulateHandler creates a new simulate handler. results memoises whole
// runs by input fingerprint and may be nil to disable memoisation. runs keeps
// completed runs for CSV download; the caller owns both caches.
func NewSimulateHandler(engine *simulation.Engine, results, runs *cache.TTL[*simulation.Result], logger *slog.Logger) *SimulateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulateHandler{
		engine:  engine,
		results: results,
		runs:    runs,
		logger:  logger,
	}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	history, err := parseObservations(req.Observations)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if err := req.Overrides.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, string(model.ReasonInvalidParameter), err.Error(), nil)
		return
	}

	sc := model.Scenario{
		Horizon:        req.Scenario.Horizon,
		SupplyCut:      *req.Scenario.SupplyCut,
		DemandSpike:    *req.Scenario.DemandSpike,
		ReserveRelease: *req.Scenario.ReserveRelease,
	}
	h.respond(c, "request", history, sc, req.Overrides, req.Options, analysis.Market{})
}

// respond runs the pipeline (through the result cache) and writes the
// response. Non-completed runs still return the typed partial result.
func (h *SimulateHandler) respond(c *gin.Context, source string, history model.HistoricalSeries, sc model.Scenario, overrides *config.Overrides, opts models.SimulateOptions, market analysis.Market) {
	engine := h.engineFor(overrides)

	res, cached, err := h.run(engine, history, sc)
	simulationsTotal.WithLabelValues(string(res.Status), source).Inc()
	if cached {
		simulationCacheHits.Inc()
	}
	droppedObservations.Add(float64(len(res.Warnings)))

	log := h.logger.With("source", source, "horizon", sc.Horizon, "scenarios", sc.Active(), "cached", cached)
	if err != nil {
		log.Info("simulation not completed", "status", res.Status, "reason", res.Reason, "error", err)
		resp := buildResponse("", res, cached, opts, engine.Effects.Floor, market)
		resp.Error = &models.ErrorDetail{Code: string(res.Reason), Message: err.Error()}
		c.JSON(statusForError(err), resp)
		return
	}

	id := ""
	if h.runs != nil {
		id = uuid.NewString()
		h.runs.Set(id, res)
	}
	log.Info("simulation completed", "id", id, "points", len(res.Points), "warnings", len(res.Warnings))
	c.JSON(http.StatusOK, buildResponse(id, res, cached, opts, engine.Effects.Floor, market))
}

func (h *SimulateHandler) engineFor(overrides *config.Overrides) *simulation.Engine {
	if overrides.Empty() {
		return h.engine
	}
	return config.WithOverrides(h.engine, overrides)
}

func (h *SimulateHandler) run(engine *simulation.Engine, history model.HistoricalSeries, sc model.Scenario) (*simulation.Result, bool, error) {
	key := simulation.Fingerprint(history, sc, engine)
	return h.results.Do(key, func() (*simulation.Result, error) {
		return engine.Run(history, sc)
	})
}

// GetCSV handles GET /api/v1/simulate/:id/csv
func (h *SimulateHandler) GetCSV(c *gin.Context) {
	id := c.Param("id")
	res, ok := h.runs.Get(id)
	if !ok {
		abortWithError(c, http.StatusNotFound, "RUN_NOT_FOUND",
			fmt.Sprintf("No simulation run with id %q (runs expire)", id), nil)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "combined_"+id+".csv"))
	c.Status(http.StatusOK)
	if err := simulation.WriteCombined(c.Writer, res.Points); err != nil {
		h.logger.Error("write csv failed", "id", id, "error", err)
	}
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	history, err := parseObservations(req.Observations)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if err := req.Overrides.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, string(model.ReasonInvalidParameter), err.Error(), nil)
		return
	}

	engine := h.engineFor(req.Overrides)
	ranked, err := analysis.RankScenarios(engine, history, req.Horizon)
	if err != nil {
		simulationsTotal.WithLabelValues(strings.ToLower(string(model.ReasonFor(err))), "compare").Inc()
		abortWithError(c, statusForError(err), string(model.ReasonFor(err)), err.Error(), nil)
		return
	}

	resp := models.CompareResponse{Comparison: make([]models.ComparisonResult, 0, len(ranked))}
	for i, r := range ranked {
		simulationsTotal.WithLabelValues(string(r.Summary.Status), "compare").Inc()
		resp.Comparison = append(resp.Comparison, models.ComparisonResult{
			Rank:     i + 1,
			Scenario: echoScenario(r.Scenario),
			Summary:  r.Summary.Rounded(2),
		})
	}
	h.logger.Info("comparison completed", "horizon", req.Horizon, "combinations", len(ranked))
	c.JSON(http.StatusOK, resp)
}
