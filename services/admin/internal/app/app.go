package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pressroom/pkg/config"
	"pressroom/pkg/jwt"
	"pressroom/pkg/logger"
	"pressroom/pkg/middleware"
	"pressroom/pkg/queue"
	"pressroom/pkg/s3"
	"pressroom/pkg/visibility"
	adminHTTP "pressroom/services/admin/internal/controller/http"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/usecase"
	"pressroom/services/admin/internal/viewstate"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "pressroom/services/admin/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, s3Client *s3.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	categoryRepo := persistent.NewCategoryRepository(db)
	userRepo := persistent.NewUserRepository(db)
	views := viewstate.NewRedisStore(redisClient, time.Duration(cfg.ViewStateTTLMinutes)*time.Minute)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService)
	postUseCase := usecase.NewPostUseCase(postRepo, views, s3Client, queueClient, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, views, log)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo)
	userUseCase := usecase.NewUserUseCase(userRepo)
	selectionUseCase := usecase.NewSelectionUseCase(views)
	editUseCase := usecase.NewEditUseCase(postRepo, categoryRepo, views)

	// Initialize HTTP handlers
	authHandler := adminHTTP.NewAuthHandler(authUseCase, log)
	postHandler := adminHTTP.NewPostHandler(postUseCase, log)
	commentHandler := adminHTTP.NewCommentHandler(commentUseCase, log)
	categoryHandler := adminHTTP.NewCategoryHandler(categoryUseCase, log)
	userHandler := adminHTTP.NewUserHandler(userUseCase, log)
	selectionHandler := adminHTTP.NewSelectionHandler(selectionUseCase, log)
	editHandler := adminHTTP.NewEditHandler(editUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", adminHTTP.ViewIDHeader},
		ExposeHeaders:    []string{"Content-Length", adminHTTP.ViewIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/api/v1/auth/login", middleware.RateLimitMiddleware(redisClient, 10, time.Minute), authHandler.Login)

	staff := string(visibility.RoleAuthor)
	admin := string(visibility.RoleAdmin)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	api.Use(middleware.RequireRole(staff, admin))

	{
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.POST("/posts", postHandler.CreatePost)
		api.PUT("/posts/:id", postHandler.UpdatePost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.PATCH("/posts/:id/publish", postHandler.SetPublished)
		api.POST("/posts/bulk", postHandler.BulkAction)

		api.GET("/categories", categoryHandler.ListCategories)

		api.GET("/selection/:list", selectionHandler.Get)
		api.POST("/selection/:list/toggle", selectionHandler.Toggle)
		api.POST("/selection/:list/all", selectionHandler.SetSelectAll)
		api.POST("/selection/:list/replace", selectionHandler.Replace)
		api.DELETE("/selection/:list", selectionHandler.Clear)

		api.GET("/edit", editHandler.Current)
		api.POST("/edit", editHandler.Start)
		api.POST("/edit/save", editHandler.Save)
		api.POST("/edit/cancel", editHandler.Cancel)
	}

	// Moderation and account management stay admin-only; the use cases
	// enforce this too, the route guard just fails earlier.
	adminOnly := api.Group("")
	adminOnly.Use(middleware.RequireRole(admin))
	{
		adminOnly.GET("/comments", commentHandler.ListComments)
		adminOnly.PATCH("/comments/:id/status", commentHandler.SetStatus)
		adminOnly.DELETE("/comments/:id", commentHandler.DeleteComment)
		adminOnly.POST("/comments/bulk", commentHandler.BulkAction)

		adminOnly.POST("/categories", categoryHandler.CreateCategory)
		adminOnly.PUT("/categories/:id", categoryHandler.RenameCategory)
		adminOnly.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		adminOnly.GET("/users", userHandler.ListUsers)
		adminOnly.POST("/users", userHandler.CreateUser)
		adminOnly.PUT("/users/:id", userHandler.UpdateUser)
		adminOnly.PATCH("/users/:id/active", userHandler.SetActive)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.AdminPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Admin service starting on port %s", cfg.AdminPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down admin service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Admin service exited")
}
