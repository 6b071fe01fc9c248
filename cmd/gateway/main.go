package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"snow-tracker/internal/auth"
	"snow-tracker/internal/config"
	"snow-tracker/internal/location"
	location_api "snow-tracker/internal/location/api"
	"snow-tracker/internal/logger"
	"snow-tracker/internal/server"
	"snow-tracker/internal/view"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present
	cfg := config.Load()

	logger := logger.NewLogger(logger.Options{Dir: cfg.Log.Dir, Prefix: "gateway", Debug: cfg.App.Debug})
	defer logger.Close()

	logger.Info("APP", "Starting location gateway")

	locationService, closeCache, err := location.NewFromConfig(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("CACHE", fmt.Sprintf("Failed to set up location service: %v", err))
	}
	defer closeCache()

	engine, err := view.NewEngine()
	if err != nil {
		logger.Fatal("VIEW", fmt.Sprintf("Failed to parse templates: %v", err))
	}

	r := server.NewRouter(cfg, logger,
		view.Assets{},
		location_api.NewHandler(locationService, logger),
		auth.NewHandler(engine, logger),
	)

	server.Run(server.New(cfg.Server.GatewayPort, r, cfg), "Location gateway", logger)
}
