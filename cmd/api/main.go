package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-unhired-backend/config"
	"go-unhired-backend/internal/ai"
	v1 "go-unhired-backend/internal/delivery/http/v1"
	"go-unhired-backend/internal/repository/postgres"
	"go-unhired-backend/internal/scheduler"
	"go-unhired-backend/internal/timing"
	"go-unhired-backend/internal/usecase"
	"go-unhired-backend/pkg/database"
	"go-unhired-backend/pkg/email"
	"go-unhired-backend/pkg/logger"
	"go-unhired-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting unhired backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiting falls back to in-memory)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	badgeRepo := postgres.NewBadgeRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - rejection emails will be skipped")
	}

	// 7. Setup UseCases
	validate := validator.New()
	policy := timing.NewPolicy(cfg)
	aiClient := ai.NewGeminiClient(cfg)

	badgeUC := usecase.NewBadgeUsecase(badgeRepo, notificationRepo)
	evaluationUC := usecase.NewEvaluationUsecase(applicationRepo, jobRepo, notificationRepo, userRepo, badgeUC, aiClient, emailService, policy)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, notificationRepo, policy, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, badgeUC)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, badgeUC)

	// 8. Setup Evaluation Scheduler
	sched := scheduler.New(applicationRepo, evaluationUC, cfg.EvalTickInterval, cfg.EvalBatchSize, cfg.GeminiAPIKey != "")
	sched.Start()

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ApplicationUC:  applicationUC,
		JobUC:          jobUC,
		NotificationUC: notificationUC,
		BadgeUC:        badgeUC,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
