package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduPulse/app/echo-server/router"
	"eduPulse/business/chatbot"
	"eduPulse/business/feedback"
	"eduPulse/business/prediction"
	"eduPulse/business/recommendation"
	psqlRepo "eduPulse/internal/repository/postgres"
	redisRepo "eduPulse/internal/repository/redis"
	"eduPulse/internal/rest"
	"eduPulse/pkg/config"
	"eduPulse/pkg/database"
	redisdb "eduPulse/pkg/database/redis"
	"eduPulse/pkg/logger"
	"eduPulse/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting eduPulse", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		_ = redisdb.CloseRedisClient(redisClient)
	}()

	metrics.Init()

	// Init repo
	courseRepo := psqlRepo.NewCourseRepository(db)
	activityRepo := psqlRepo.NewActivityRepository(db)
	profileRepo := psqlRepo.NewProfileRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	weightRepo := psqlRepo.NewWeightRepository(db)
	clusterRepo := psqlRepo.NewClusterRepository(db)
	historyRepo := redisRepo.NewHistoryRepository(
		redisClient,
		cfg.Engine.HistoryLimit,
		time.Duration(cfg.Engine.HistoryTTLDays)*24*time.Hour,
	)

	// Init service
	learner := feedback.NewLearner(interactionRepo, weightRepo)
	chatService := chatbot.NewChatService(
		chatbot.NewIntentClassifier(),
		chatbot.NewEntityExtractor(courseRepo, cfg.Engine.CatalogLimit),
		profileRepo,
		historyRepo,
		learner,
		weightRepo,
		cfg.Engine.HistoryLimit,
	)
	recommendationService := recommendation.NewRecommendationService(courseRepo, activityRepo, cfg.Engine.CatalogLimit)
	predictionService := prediction.NewPredictionService(
		courseRepo,
		profileRepo,
		activityRepo,
		weightRepo,
		clusterRepo,
		cfg.Engine.ChurnWindowDays,
		cfg.Engine.BaselineWindowDays,
	)

	// Init handler
	chatHandler := rest.NewChatHandler(chatService, learner)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService)
	predictionHandler := rest.NewPredictionHandler(predictionService)
	adminHandler := rest.NewAdminHandler(
		learner,
		predictionService,
		weightRepo,
		time.Duration(cfg.Engine.RetentionDays)*24*time.Hour,
	)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetChatRoutes(api, chatHandler, cfg.JWT)
	router.SetRecommendationRoutes(api, recommendationHandler, cfg.JWT)
	router.SetPredictionRoutes(api, predictionHandler, cfg.JWT)
	router.SetAdminRoutes(api, adminHandler, cfg.JWT)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
