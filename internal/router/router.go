package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/teamdesk-dev/teamdesk/internal/config"
	"github.com/teamdesk-dev/teamdesk/internal/handlers"
	"github.com/teamdesk-dev/teamdesk/internal/logger"
	"github.com/teamdesk-dev/teamdesk/internal/metrics"
	"github.com/teamdesk-dev/teamdesk/internal/middleware"
	"github.com/teamdesk-dev/teamdesk/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func New(database *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered interface{}) {
		logger.L().Error("panic recovered",
			zap.String("path", ctx.Request.URL.Path),
			zap.Any("error", recovered),
		)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.NewHTTPMetrics("teamdesk").Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userRepository := repositories.NewUserRepository(database)
	projectRepository := repositories.NewProjectRepository(database)

	authHandler := handlers.NewAuthHandler(userRepository)
	userHandler := handlers.NewUserHandler(userRepository)
	projectHandler := handlers.NewProjectHandler(projectRepository)

	r.GET("/", handlers.Root)
	r.GET("/favicon.ico", func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	r.GET("/status", userHandler.Status)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/request-reset", authHandler.RequestReset)
	}

	users := r.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/search", userHandler.Search)
		users.GET("/:id", userHandler.Get)
		users.POST("", userHandler.Create)
		users.PUT("/:id", userHandler.Update)
		users.PUT("/:id/password", userHandler.UpdatePassword)
		users.DELETE("/:id", userHandler.Delete)
	}

	options := r.Group("/options")
	{
		options.GET("/status", projectHandler.StatusOptions)
		options.GET("/priority", projectHandler.PriorityOptions)
	}

	projects := r.Group("/projects")
	{
		projects.GET("", projectHandler.List)
		projects.GET("/:id", projectHandler.Get)
		projects.POST("", projectHandler.Create)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)
		projects.GET("/:id/members", projectHandler.Members)
		projects.PUT("/:id/members", projectHandler.ReplaceMembers)
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Rota não encontrada"})
	})

	return r
}
