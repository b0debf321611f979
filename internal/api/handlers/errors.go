package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"renewable-invest/internal/api/models"
	"renewable-invest/internal/model"
	"renewable-invest/internal/store"
)

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		ve *model.ValidationError
		ce *model.ConfigurationError
		de *model.NumericDivergenceError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_FAILED",
				Message: err.Error(),
				Details: map[string]interface{}{"fields": ve.Fields},
			},
		})
	case errors.As(err, &ce):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIGURATION",
				Message: err.Error(),
				Details: map[string]interface{}{"op": ce.Op},
			},
		})
	case errors.As(err, &de):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NUMERIC_DIVERGENCE",
				Message: err.Error(),
				Details: map[string]interface{}{"method": de.Method, "iterations": de.Iterations},
			},
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: err.Error(),
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
	}
}
