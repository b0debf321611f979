package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"renewable-invest/internal/api/models"
	"renewable-invest/internal/config"
	"renewable-invest/internal/model"
	"renewable-invest/internal/validate"
)

// ScenarioHandler serves the source catalogue and server-side scenario files
type ScenarioHandler struct {
	scenarioDir string
	logger      zerolog.Logger
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(scenarioDir string, logger zerolog.Logger) *ScenarioHandler {
	logger.Debug().Str("dir", scenarioDir).Msg("scenario directory")
	return &ScenarioHandler{scenarioDir: scenarioDir, logger: logger}
}

// SourceDefaults handles GET /api/v1/sources/defaults
func (h *ScenarioHandler) SourceDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, models.SourceDefaultsResponse{
		Sources: model.DefaultSources(),
		Form:    validate.Defaults(),
	})
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	infos, skipped, err := config.ListScenarios(h.scenarioDir)
	if err != nil {
		if !os.IsNotExist(err) {
			h.logger.Warn().Err(err).Str("dir", h.scenarioDir).Msg("failed to read scenario directory")
		}
		c.JSON(http.StatusOK, models.ScenariosResponse{Scenarios: []config.ScenarioInfo{}})
		return
	}
	for file, err := range skipped {
		h.logger.Warn().Err(err).Str("file", file).Msg("skipping unreadable scenario")
	}
	c.JSON(http.StatusOK, models.ScenariosResponse{Scenarios: infos})
}
