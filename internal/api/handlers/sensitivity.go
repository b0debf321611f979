package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"renewable-invest/internal/analysis"
	"renewable-invest/internal/api/models"
	"renewable-invest/internal/model"
)

// ParameterInfo describes a sensitivity parameter
type ParameterInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var sensitivityParameters = []ParameterInfo{
	{Name: analysis.ParamElectricityPrice, Description: "Year-1 electricity price per kWh."},
	{Name: analysis.ParamPriceIncrease, Description: "Annual electricity price escalation, %."},
	{Name: analysis.ParamCostPerKW, Description: "Installed cost per kW of every enabled source."},
	{Name: analysis.ParamDailyHours, Description: "Full-load production hours per day of every enabled source."},
	{Name: analysis.ParamDiscountRate, Description: "Discount rate used for NPV, %."},
	{Name: analysis.ParamInterestRate, Description: "Loan interest rate, %."},
}

// ListParameters handles GET /api/v1/sensitivity/parameters
func ListParameters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"parameters": sensitivityParameters})
}

// Sensitivity handles POST /api/v1/sensitivity
func (h *CalculateHandler) Sensitivity(c *gin.Context) {
	var req models.SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg, err := h.buildConfig(req.Scenario, "")
	if err != nil {
		respondError(c, err)
		return
	}

	points, err := analysis.Sensitivity(cfg.Input(nil), req.Parameter, req.ChangePct)
	if err != nil {
		respondError(c, &model.ValidationError{Fields: []model.FieldError{
			{Field: "parameter", Message: fmt.Sprintf("unsupported parameter %q", req.Parameter)},
		}})
		return
	}
	c.JSON(http.StatusOK, models.SensitivityResponse{Parameter: req.Parameter, Points: points})
}
