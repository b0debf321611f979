package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"renewable-invest/internal/analysis"
	"renewable-invest/internal/api/models"
	"renewable-invest/internal/cashflow"
	"renewable-invest/internal/config"
	"renewable-invest/internal/engine"
	"renewable-invest/internal/forecast"
	"renewable-invest/internal/model"
	"renewable-invest/internal/store"
)

// forecastTimeout bounds a single provider lookup; on expiry the calculation
// continues with neutral factors.
const forecastTimeout = 5 * time.Second

// CalculateHandler handles calculation-related requests
type CalculateHandler struct {
	store       store.Store
	provider    forecast.Provider
	scenarioDir string
	sourcesDir  string
	forecastURL string
	forecastKey string
	logger      zerolog.Logger
}

// CalculateOptions configures a CalculateHandler.
type CalculateOptions struct {
	Store       store.Store
	Provider    forecast.Provider // used when a scenario names no provider
	ScenarioDir string
	SourcesDir  string
	ForecastURL string
	ForecastKey string
	Logger      zerolog.Logger
}

// NewCalculateHandler creates a new calculate handler
func NewCalculateHandler(opts CalculateOptions) *CalculateHandler {
	return &CalculateHandler{
		store:       opts.Store,
		provider:    opts.Provider,
		scenarioDir: opts.ScenarioDir,
		sourcesDir:  opts.SourcesDir,
		forecastURL: opts.ForecastURL,
		forecastKey: opts.ForecastKey,
		logger:      opts.Logger,
	}
}

// Calculate handles POST /api/v1/calculate
func (h *CalculateHandler) Calculate(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg, err := h.buildConfig(req.Scenario, req.Options.ScenarioID)
	if err != nil {
		respondError(c, err)
		return
	}

	weather, err := h.weather(c.Request.Context(), cfg, req.Options.UseForecast)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := engine.Run(cfg.Input(weather))
	if err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.store.Save(cfg.Name, result)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildResponse(rec, req.Options.IncludeDetails))
}

// GetCalculation handles GET /api/v1/calculations/:id
func (h *CalculateHandler) GetCalculation(c *gin.Context) {
	rec, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.buildResponse(rec, true))
}

// GetCashFlowsCSV handles GET /api/v1/calculations/:id/cashflows.csv
func (h *CalculateHandler) GetCashFlowsCSV(c *gin.Context) {
	rec, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="cashflows-%s.csv"`, rec.ID))
	c.Status(http.StatusOK)
	if err := cashflow.WriteCSV(c.Writer, rec.Result.Metrics.YearlyCashFlows); err != nil {
		h.logger.Error().Err(err).Str("id", rec.ID).Msg("write cash flow csv")
	}
}

// Compare handles POST /api/v1/calculate/compare
func (h *CalculateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	base, err := h.buildConfig(req.BaseScenario, req.Options.ScenarioID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Variation sources files resolve against the server's sources directory
	// before merging, exactly like the base.
	for i := range req.Variations {
		v := &req.Variations[i].Config
		if err := h.resolveSources(v); err != nil {
			respondError(c, err)
			return
		}
	}

	// Weather is resolved once for the base location and shared by every
	// variation.
	weather, err := h.weather(c.Request.Context(), base, req.Options.UseForecast)
	if err != nil {
		respondError(c, err)
		return
	}

	outcomes := analysis.Compare(base, req.Variations, weather)
	c.JSON(http.StatusOK, models.NewComparison(outcomes))
}

// buildConfig merges the request scenario onto an optional server-side base
// scenario and validates the result.
func (h *CalculateHandler) buildConfig(scenario config.Config, scenarioID string) (config.Config, error) {
	if err := h.resolveSources(&scenario); err != nil {
		return config.Config{}, err
	}

	cfg := scenario
	if scenarioID != "" {
		path, ok := config.ScenarioPath(h.scenarioDir, scenarioID)
		if !ok {
			return config.Config{}, &model.ValidationError{Fields: []model.FieldError{
				{Field: "options.scenario_id", Message: fmt.Sprintf("unknown scenario %q", scenarioID)},
			}}
		}
		base, err := config.LoadUnchecked(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load scenario %s: %w", scenarioID, err)
		}
		cfg = config.Merge(*base, scenario)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveSources loads a sources preset named in a request. Only bare preset
// names from the server's sources directory are accepted.
func (h *CalculateHandler) resolveSources(cfg *config.Config) error {
	if cfg.SourcesFile == "" {
		return nil
	}
	name := cfg.SourcesFile
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return &model.ValidationError{Fields: []model.FieldError{
			{Field: "sources_file", Message: "must be a preset name"},
		}}
	}
	if err := cfg.ResolveSourcesFile(h.sourcesDir); err != nil {
		h.logger.Warn().Err(err).Str("sources_file", name).Msg("failed to load sources preset")
		return &model.ValidationError{Fields: []model.FieldError{
			{Field: "sources_file", Message: fmt.Sprintf("unknown preset %q", name)},
		}}
	}
	cfg.SourcesFile = ""
	return nil
}

// weather returns nil unless a forecast was requested, in which case the
// scenario's provider (or the server default) is asked with a bounded
// timeout. Provider failures degrade to neutral factors.
func (h *CalculateHandler) weather(ctx context.Context, cfg config.Config, useForecast bool) (model.WeatherFactors, error) {
	if !useForecast {
		return nil, nil
	}
	p, err := cfg.Provider(h.forecastURL, h.forecastKey, h.logger)
	if err != nil {
		return nil, &model.ValidationError{Fields: []model.FieldError{{Field: "forecast", Message: err.Error()}}}
	}
	if p == nil {
		p = h.provider
	}
	ctx, cancel := context.WithTimeout(ctx, forecastTimeout)
	defer cancel()
	return forecast.Resolve(ctx, p, cfg.System.Location, h.logger), nil
}

func (h *CalculateHandler) buildResponse(rec store.Record, includeDetails bool) models.CalculateResponse {
	resp := models.CalculateResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		Summary:   models.NewSummary(rec.Result),
	}
	if includeDetails {
		resp.Result = rec.Result
	}
	return resp
}
