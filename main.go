// @title GCSE Prep Practice Engine API
// @version 1.0
// @description Backend service for the GCSE Prep study platform: adaptive practice sessions, lesson progress and grade prediction.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"gcse_prep_backend/internal/app"
	"gcse_prep_backend/internal/config"
	"gcse_prep_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.WatchConfig("configs/config.yaml")
	application.Run()
}
