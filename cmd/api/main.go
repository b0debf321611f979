package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"renewable-invest/internal/api"
	"renewable-invest/internal/config"
	"renewable-invest/internal/forecast"
	"renewable-invest/internal/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "renewable-invest-api").Logger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.ServerFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := store.NewMemory(cfg.ResultTTL)
	go results.Run(ctx, time.Minute)

	// Scenarios without a forecast section use the remote provider when one
	// is configured and the latitude heuristic otherwise.
	var provider forecast.Provider = forecast.Climatology{}
	if cfg.ForecastURL != "" {
		cached := forecast.NewCached(forecast.NewHTTPClient(cfg.ForecastAPIKey, cfg.ForecastURL, logger), cfg.ForecastTTL)
		go cached.Run(ctx, 5*time.Minute)
		provider = cached
		logger.Info().Str("url", cfg.ForecastURL).Dur("ttl", cfg.ForecastTTL).Msg("remote forecast provider enabled")
	}

	if info, err := os.Stat(cfg.ScenarioDir); err != nil || !info.IsDir() {
		logger.Warn().Str("dir", cfg.ScenarioDir).Msg("scenario directory not found")
	}

	router := api.NewRouter(api.Options{
		Store:          results,
		Provider:       provider,
		ScenarioDir:    cfg.ScenarioDir,
		SourcesDir:     cfg.SourcesDir,
		ForecastURL:    cfg.ForecastURL,
		ForecastAPIKey: cfg.ForecastAPIKey,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
