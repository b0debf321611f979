package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renewable-invest/internal/api/models"
	"renewable-invest/internal/carbon"
	"renewable-invest/internal/goal"
	"renewable-invest/internal/model"
	"renewable-invest/internal/validate"
)

// SolveGoal handles POST /api/v1/goal
func SolveGoal(c *gin.Context) {
	var req models.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	defaults := validate.Defaults()
	hours := req.DailyProductionHours
	if hours == 0 {
		hours = defaults[validate.FieldDailyHours]
	}
	factor := req.GridEmissionFactor
	if factor == 0 {
		if req.Country != "" {
			factor = carbon.GridFactor(req.Country)
		} else {
			factor = defaults[validate.FieldGridFactor]
		}
	}

	s, err := goal.Solve(req.Target, factor, model.Hours(hours))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.GoalResponse{
		Suggestion:           s,
		GridEmissionFactor:   factor,
		DailyProductionHours: hours,
	})
}
