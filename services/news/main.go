package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pressroom/pkg/cache"
	"pressroom/pkg/config"
	"pressroom/pkg/database"
	"pressroom/pkg/logger"
	"pressroom/services/news/handlers"
	"pressroom/services/news/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title           Pressroom News API
// @version         1.0
// @description     Public news feed: published posts, approved comments, comment submission.

// @host      localhost:8081
// @BasePath  /api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	newsRepo := repository.NewNewsRepository(db)
	newsHandler := handlers.NewNewsHandler(newsRepo, redisClient, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/news", newsHandler.ListNews)
		api.GET("/news/:id", newsHandler.GetNews)
		api.GET("/news/slug/:slug", newsHandler.GetNewsBySlug)
		api.GET("/news/:id/comments", newsHandler.ListComments)
		api.POST("/news/:id/comments", newsHandler.SubmitComment)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.NewsPort,
		Handler: r,
	}

	go func() {
		log.Info("News service starting on port %s", cfg.NewsPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down news service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("News service exited")
}
