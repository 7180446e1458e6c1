package rest

import (
	"context"
	"net/http"
	"time"

	"eduPulse/business/feedback"
	"eduPulse/domain"

	"github.com/labstack/echo/v4"
)

type (
	AdminHandler struct {
		trainer    TrainingService
		clusterer  ClusteringService
		weightRepo WeightReader
		retention  time.Duration
	}

	TrainingService interface {
		RunDailyTraining(ctx context.Context, day time.Time, retention time.Duration) (feedback.TrainingReport, error)
	}

	ClusteringService interface {
		RunClustering(ctx context.Context, runDate string) ([]domain.ClusterProfile, error)
		ClusterProfiles(ctx context.Context) ([]domain.ClusterProfile, string, error)
	}

	WeightReader interface {
		Weights(ctx context.Context, model string) (map[string]float64, error)
	}
)

func NewAdminHandler(trainer TrainingService, clusterer ClusteringService, weightRepo WeightReader, retention time.Duration) *AdminHandler {
	return &AdminHandler{
		trainer:    trainer,
		clusterer:  clusterer,
		weightRepo: weightRepo,
		retention:  retention,
	}
}

// POST /api/v1/admin/training/run
//
// The external scheduler calls this once per day. Re-running the same day
// recomputes the same tables.
func (h *AdminHandler) RunTraining(c echo.Context) error {
	ctx := c.Request().Context()
	day := time.Now().UTC()

	report, err := h.trainer.RunDailyTraining(ctx, day, h.retention)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	if h.clusterer != nil {
		if _, err := h.clusterer.RunClustering(ctx, report.Day); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":           err.Error(),
				"training_report": report,
			})
		}
	}

	return c.JSON(http.StatusOK, report)
}

// GET /api/v1/admin/weights/:model
func (h *AdminHandler) GetWeights(c echo.Context) error {
	model := c.Param("model")
	if model == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "model is required",
		})
	}

	weights, err := h.weightRepo.Weights(c.Request().Context(), model)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"model":   model,
		"weights": weights,
	})
}

// GET /api/v1/admin/clusters
func (h *AdminHandler) GetClusters(c echo.Context) error {
	profiles, runDate, err := h.clusterer.ClusterProfiles(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"run_date": runDate,
		"clusters": profiles,
	})
}
