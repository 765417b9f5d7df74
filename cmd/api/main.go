package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-twin/internal/api"
	"inventory-twin/internal/cache"
	"inventory-twin/internal/config"
	"inventory-twin/internal/model"
	"inventory-twin/internal/simulation"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("TWIN_CONFIG"), "Path to YAML config (defaults apply when empty)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logger.Error("failed to load config", "path", *cfgPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if port := os.Getenv("API_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		cfg.Server.StaticDir = dir
	}
	if os.Getenv("API_ENV") == "production" {
		cfg.Server.Env = "production"
	}
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	runs := cache.New[*simulation.Result](api.RunRetention, 10*time.Minute)
	defer runs.Close()

	deps := api.Deps{Config: cfg, Logger: logger, Runs: runs}
	if cfg.Cache.Enabled {
		results := cache.New[*simulation.Result](cfg.Cache.TTL, 5*time.Minute)
		upstream := cache.New[*model.EIAResponse](cfg.Cache.UpstreamTTL, time.Hour)
		defer results.Close()
		defer upstream.Close()
		deps.Results = results
		deps.Upstream = upstream
		logger.Info("caching enabled", "ttl", cfg.Cache.TTL, "upstream_ttl", cfg.Cache.UpstreamTTL)
	}
	if cfg.APIKey() == "" {
		logger.Warn("no server-side EIA key; /api/v1/simulate/eia requires X-EIA-Key", "env", cfg.EIA.APIKeyEnv)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting API server", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
