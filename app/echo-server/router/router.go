package router

import (
	"eduPulse/internal/middleware"
	"eduPulse/internal/rest"
	"eduPulse/pkg/config"

	"github.com/labstack/echo/v4"
)

func SetChatRoutes(api *echo.Group, handler *rest.ChatHandler, cfg config.JWTConfig) {
	chat := api.Group("/chat", middleware.AuthMiddleware(cfg))
	chat.POST("/message", handler.Message)
	chat.POST("/feedback", handler.Feedback)
	chat.DELETE("/history", handler.ClearHistory)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, cfg config.JWTConfig) {
	reco := api.Group("/recommendations", middleware.AuthMiddleware(cfg))
	reco.GET("", handler.Recommend)
}

func SetPredictionRoutes(api *echo.Group, handler *rest.PredictionHandler, cfg config.JWTConfig) {
	pred := api.Group("/predictions", middleware.AuthMiddleware(cfg))
	pred.GET("/completion-time/:courseID", handler.CompletionTime)
	pred.GET("/churn-risk", handler.ChurnRisk)
	pred.GET("/anomalies", handler.Anomalies)
}

func SetAdminRoutes(api *echo.Group, handler *rest.AdminHandler, cfg config.JWTConfig) {
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())

	admin.POST("/training/run", handler.RunTraining)
	admin.GET("/weights/:model", handler.GetWeights)
	admin.GET("/clusters", handler.GetClusters)
}
