package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"snow-tracker/internal/analytics"
	analytics_api "snow-tracker/internal/analytics/api"
	"snow-tracker/internal/auth"
	"snow-tracker/internal/config"
	"snow-tracker/internal/dashboard"
	"snow-tracker/internal/dataset"
	"snow-tracker/internal/location"
	location_api "snow-tracker/internal/location/api"
	"snow-tracker/internal/logger"
	"snow-tracker/internal/reservations"
	reservations_api "snow-tracker/internal/reservations/api"
	"snow-tracker/internal/server"
	"snow-tracker/internal/view"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	logger := logger.NewLogger(logger.Options{Dir: cfg.Log.Dir, Prefix: "snow-tracker", Debug: cfg.App.Debug})
	defer logger.Close()

	logger.Info("APP", "Starting Snow Mountain Tracker dashboard")
	if envErr != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}
	if cfg.App.Testing {
		logger.Info("CONFIG", "Testing mode enabled")
	}

	ctx := context.Background()

	data := dataset.Generate(dataset.Options{
		StartDate: cfg.Dataset.StartDate,
		Days:      cfg.Dataset.Days,
		Resorts:   dataset.DefaultResorts,
		Seed:      cfg.Dataset.Seed,
	})
	first, last := data.DateRange()
	logger.Info("DATASET", fmt.Sprintf("Generated %d booking rows for %d resorts (%s to %s)",
		len(data.Bookings), len(dataset.DefaultResorts), first.Format("2006-01-02"), last.Format("2006-01-02")))

	reservationDB, err := reservations.OpenMemory(ctx)
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to open reservation table: %v", err))
	}
	defer reservationDB.Close()
	if err := reservationDB.Seed(ctx, data.Reservations); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to seed reservation table: %v", err))
	}
	logger.LogDatabase("SEED", "reservations", fmt.Sprintf("%d rows loaded", len(data.Reservations)))

	locationService, closeCache, err := location.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("CACHE", fmt.Sprintf("Failed to set up location service: %v", err))
	}
	defer closeCache()

	engine, err := view.NewEngine()
	if err != nil {
		logger.Fatal("VIEW", fmt.Sprintf("Failed to parse templates: %v", err))
	}

	analyticsService := analytics.NewService(data, dataset.DefaultResorts, cfg.Dataset.UnitPrice)
	reservationService := reservations.NewService(reservationDB)

	logger.Info("HTTP", "Setting up router and middleware")
	r := server.NewRouter(cfg, logger,
		view.Assets{},
		dashboard.NewHandler(analyticsService, reservationService, engine, logger),
		analytics_api.NewHandler(analyticsService, logger),
		reservations_api.NewHandler(reservationService, logger),
		location_api.NewHandler(locationService, logger),
		auth.NewHandler(engine, logger),
	)
	logger.Info("ROUTER", "Dashboard, analytics, reservation, gateway and auth routes registered")

	server.Run(server.New(cfg.Server.Port, r, cfg), "Snow Mountain Tracker", logger)
}
