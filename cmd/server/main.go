package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"meetupscheduler/config"
	_ "meetupscheduler/docs"
	authadapter "meetupscheduler/internal/adapters/auth"
	"meetupscheduler/internal/adapters/queue"
	delivery "meetupscheduler/internal/delivery/http"
	"meetupscheduler/internal/delivery/http/controllers"
	"meetupscheduler/internal/delivery/http/middleware"
	"meetupscheduler/internal/domain"
	"meetupscheduler/internal/repository/postgres"
	"meetupscheduler/internal/services"
)

const bcryptCost = 10

// @title Meetup Scheduler API
// @version 1.0
// @description Backend for organizing meetups and subscribing to them.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to PostgreSQL")

	ctx := context.Background()
	taskQueue, err := queue.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer taskQueue.Close()
	logger.Info("connected to Redis")

	meetupRepo := postgres.NewMeetupRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	userRepo := postgres.NewUserRepository(db)

	hasher := authadapter.NewBcryptHasher(bcryptCost)
	tokenIssuer, tokenVerifier := authadapter.NewJWTTokens(cfg.JWTSecret)
	clock := domain.NewSystemClock()

	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry, clock)
	meetupService := services.NewMeetupService(meetupRepo, clock)
	subscriptionService := services.NewSubscriptionService(meetupRepo, subscriptionRepo, userRepo, taskQueue, clock, logger)

	router := delivery.NewRouter(
		logger,
		tokenVerifier,
		controllers.NewAuthController(logger, authService),
		controllers.NewMeetupController(logger, meetupService),
		controllers.NewSubscriptionController(logger, subscriptionService),
		controllers.NewUserController(logger, userRepo),
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
