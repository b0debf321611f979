// Package api wires the HTTP handlers onto a gin router.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"renewable-invest/internal/api/handlers"
	"renewable-invest/internal/api/middleware"
	"renewable-invest/internal/forecast"
	"renewable-invest/internal/store"
)

// Options holds everything the router needs. Store is required.
type Options struct {
	Store          store.Store
	Provider       forecast.Provider
	ScenarioDir    string
	SourcesDir     string
	ForecastURL    string
	ForecastAPIKey string
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds the API router.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.ErrorHandler(opts.Logger))

	calculateHandler := handlers.NewCalculateHandler(handlers.CalculateOptions{
		Store:       opts.Store,
		Provider:    opts.Provider,
		ScenarioDir: opts.ScenarioDir,
		SourcesDir:  opts.SourcesDir,
		ForecastURL: opts.ForecastURL,
		ForecastKey: opts.ForecastAPIKey,
		Logger:      opts.Logger,
	})
	scenarioHandler := handlers.NewScenarioHandler(opts.ScenarioDir, opts.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/calculate", calculateHandler.Calculate)
		api.POST("/calculate/compare", calculateHandler.Compare)
		api.GET("/calculations/:id", calculateHandler.GetCalculation)
		api.GET("/calculations/:id/cashflows.csv", calculateHandler.GetCashFlowsCSV)

		api.POST("/validate", handlers.Validate)
		api.POST("/goal", handlers.SolveGoal)

		api.GET("/sensitivity/parameters", handlers.ListParameters)
		api.POST("/sensitivity", calculateHandler.Sensitivity)

		api.GET("/sources/defaults", scenarioHandler.SourceDefaults)
		api.GET("/scenarios", scenarioHandler.ListScenarios)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
