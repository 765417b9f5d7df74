// Package api wires the HTTP surface: middleware, handlers and static files.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inventory-twin/internal/api/handlers"
	"inventory-twin/internal/api/middleware"
	"inventory-twin/internal/cache"
	"inventory-twin/internal/config"
	"inventory-twin/internal/data"
	"inventory-twin/internal/model"
	"inventory-twin/internal/simulation"
)

// RunRetention is how long completed runs stay downloadable by ID.
const RunRetention = time.Hour

// Deps are the collaborators the router needs. Only Config is required.
type Deps struct {
	Config *config.Config
	Logger *slog.Logger

	// Results memoises simulation runs; nil disables memoisation.
	Results *cache.TTL[*simulation.Result]
	// Runs keeps completed runs for CSV download. When nil the router uses
	// an unswept cache with RunRetention.
	Runs *cache.TTL[*simulation.Result]
	// Upstream memoises EIA responses; nil disables it.
	Upstream *cache.TTL[*model.EIAResponse]

	// NewEIASource overrides how EIA clients are built (tests).
	NewEIASource func(apiKey string) handlers.EIASource
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newSource := d.NewEIASource
	if newSource == nil {
		newSource = func(apiKey string) handlers.EIASource {
			c := data.NewEIAClient(apiKey, cfg.EIA.BaseURL)
			c.Cache = d.Upstream
			c.Logger = logger
			if cfg.EIA.Timeout > 0 {
				c.Client.Timeout = cfg.EIA.Timeout
			}
			return c
		}
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler(logger))

	engine := cfg.NewEngine(logger)
	runs := d.Runs
	if runs == nil {
		runs = cache.New[*simulation.Result](RunRetention, 0)
	}
	simulateHandler := handlers.NewSimulateHandler(engine, d.Results, runs, logger)
	eiaHandler := handlers.NewEIAHandler(simulateHandler, cfg.EIA, cfg.APIKey(), newSource)
	scenarioHandler := handlers.NewScenarioHandler(engine.Effects, engine.Window)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"cached_results": d.Results.Len(),
			"stored_runs":    runs.Len(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Simulate)
		api.POST("/simulate/compare", simulateHandler.Compare)
		api.GET("/simulate/eia", eiaHandler.SimulateEIA)
		api.GET("/simulate/:id/csv", simulateHandler.GetCSV)

		api.GET("/scenarios", scenarioHandler.ListScenarios)
		api.GET("/regions", handlers.ListRegions)
	}

	serveStatic(router, cfg.Server.StaticDir, logger)
	return router
}

// serveStatic serves a built single-page app when staticDir exists.
func serveStatic(router *gin.Engine, staticDir string, logger *slog.Logger) {
	if staticDir == "" {
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		logger.Info("static directory not found, skipping static file serving", "dir", staticDir)
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})
	logger.Info("serving static files", "dir", staticDir)
}
