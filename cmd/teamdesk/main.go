package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/teamdesk-dev/teamdesk/db"
	"github.com/teamdesk-dev/teamdesk/internal/config"
	"github.com/teamdesk-dev/teamdesk/internal/logger"
	"github.com/teamdesk-dev/teamdesk/internal/router"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	cfg := config.Load()

	if err := logger.Init(cfg.Log.Level, cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	defer logger.L().Sync()

	database, err := db.Connect(cfg.DB)

	if err != nil {
		logger.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.Migrate(database); err != nil {
		logger.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.New(database, cfg)

	logger.L().Info("Server listening", zap.String("port", cfg.Server.Port))

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.L().Fatal("Failed to start server", zap.Error(err))
	}
}
