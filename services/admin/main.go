package main

import (
	"pressroom/pkg/cache"
	"pressroom/pkg/config"
	"pressroom/pkg/database"
	"pressroom/pkg/logger"
	"pressroom/pkg/queue"
	"pressroom/pkg/s3"
	"pressroom/services/admin/internal/app"
)

// @title           Pressroom Admin API
// @version         1.0
// @description     Editorial backend: posts, categories, comment moderation, accounts, bulk actions and inline edits.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		// Publish notifications are best-effort; the admin API works without them.
		log.Warn("RabbitMQ unavailable, publish events disabled: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, redisClient, s3Client, queueClient)
}
