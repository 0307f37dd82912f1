package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clauseguard/config"
	"clauseguard/controllers"
	"clauseguard/db"
	"clauseguard/routes"
	"clauseguard/services"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		sugar.Fatalw("failed to load config", "path", configPath, "error", err)
	}

	services.InitAnalysisService(cfg, sugar)
	controllers.SetLogger(sugar)
	db.SetLogger(sugar)

	// History storage is optional; the analysis pipeline works without it.
	if cfg.Database.URI != "" {
		if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
			sugar.Warnw("mongodb unavailable, analysis history disabled", "error", err)
		} else {
			sugar.Info("connected to MongoDB")
		}
	}

	if err := os.MkdirAll("uploads", os.ModePerm); err != nil {
		sugar.Fatalw("failed to create uploads directory", "error", err)
	}

	router := setupRouter()
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	sugar.Infow("server starting", "addr", addr)

	if err := router.Run(addr); err != nil {
		sugar.Fatalw("server exited", "error", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
	}))

	routes.SetupAnalysisRoutes(router)
	return router
}
