package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"renewable-invest/internal/api/models"
	"renewable-invest/internal/model"
	"renewable-invest/internal/validate"
)

// Validate handles POST /api/v1/validate
//
// A structurally valid request always gets 200; whether the record passed is
// reported in is_valid.
func Validate(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = model.SourceSolar
	}

	rec, res := validate.Process(req.Values)
	resp := models.ValidateResponse{
		Result:  res,
		Values:  make(map[string]float64, len(rec.Values)),
		Invalid: rec.Invalid,
		Unknown: rec.Unknown,
	}
	for k, v := range rec.Values {
		if !math.IsNaN(v) {
			resp.Values[k] = v
		}
	}
	if res.IsValid {
		sys, fin, err := validate.ToConfigs(rec, sourceType)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.System, resp.Financial = &sys, &fin
	}
	c.JSON(http.StatusOK, resp)
}
