package rest

import (
	"context"
	"net/http"
	"strconv"

	"eduPulse/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	PredictionHandler struct {
		predictionService PredictionService
	}

	PredictionService interface {
		PredictCompletionTime(ctx context.Context, userID uint, courseID uint64) (domain.CompletionEstimate, error)
		PredictChurnRisk(ctx context.Context, userID uint) (domain.RiskAssessment, error)
		DetectAnomalies(ctx context.Context, userID uint) ([]domain.Anomaly, error)
	}
)

func NewPredictionHandler(predictionService PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// GET /api/v1/predictions/completion-time/:courseID
func (h *PredictionHandler) CompletionTime(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	courseID, err := strconv.ParseUint(c.Param("courseID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid course id"})
	}

	estimate, err := h.predictionService.PredictCompletionTime(c.Request().Context(), userID, courseID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(estimate))
}

// GET /api/v1/predictions/churn-risk
func (h *PredictionHandler) ChurnRisk(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	assessment, err := h.predictionService.PredictChurnRisk(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(assessment))
}

// GET /api/v1/predictions/anomalies
func (h *PredictionHandler) Anomalies(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	anomalies, err := h.predictionService.DetectAnomalies(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(anomalies))
}
