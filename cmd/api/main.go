package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirehub-backend/config"
	_ "hirehub-backend/docs" // Important for Swagger
	"hirehub-backend/internal/delivery/http/middleware"
	v1 "hirehub-backend/internal/delivery/http/v1"
	"hirehub-backend/internal/notify"
	"hirehub-backend/internal/repository/postgres"
	"hirehub-backend/internal/usecase"
	"hirehub-backend/pkg/audit"
	"hirehub-backend/pkg/database"
	"hirehub-backend/pkg/email"
	"hirehub-backend/pkg/logger"
	redisclient "hirehub-backend/pkg/redis"
	"hirehub-backend/pkg/token"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// @title           HireHub API
// @version         1.0
// @description     Role-based recruitment backend: job lifecycle, applications, interviews and notifications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting hirehub backend", "port", cfg.Port)

	auditLog := audit.NewLogger("hirehub-api")
	defer auditLog.Sync()

	ctx := context.Background()
	dbPool, err := database.NewPostgresPool(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Redis is optional; the rate limiter degrades to its in-memory store.
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redisclient.NewClient(redisclient.Config{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	userRepo := postgres.NewUserRepository(dbPool)
	tokenRepo := postgres.NewRefreshTokenRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)

	emailService := email.NewService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notification email copies disabled")
	}

	dispatcher := notify.NewDispatcher(cfg.NotifyQueueSize, cfg.NotifyWorkers, logger.Log)
	notifier := notify.NewNotifier(dispatcher, notificationRepo, applicationRepo, userRepo, emailService, logger.Log)

	tokens := token.NewManager(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLDays)*24*time.Hour,
	)

	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo, tokenRepo, tokens, auditLog)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, notifier)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, interviewRepo, userRepo, notifier)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, applicationRepo, jobRepo, notifier)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)

	rateLimiter := middleware.NewRateLimiter(redisClient, auditLog)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		JobUC:          jobUC,
		ApplicationUC:  applicationUC,
		InterviewUC:    interviewUC,
		NotificationUC: notificationUC,
		ProfileUC:      profileUC,
		Tokens:         tokens,
		RateLimiter:    rateLimiter,
		Config:         cfg,
	})

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Let queued notifications drain before exit.
	dispatcher.Close()

	logger.Log.Info("Server exiting")
}
