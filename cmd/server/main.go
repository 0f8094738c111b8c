package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngson927/Greatea-smart-management/internal/api"
	"github.com/ngson927/Greatea-smart-management/internal/cache"
	"github.com/ngson927/Greatea-smart-management/internal/config"
	"github.com/ngson927/Greatea-smart-management/internal/repository/postgres"
	"github.com/ngson927/Greatea-smart-management/internal/service"
	"github.com/ngson927/Greatea-smart-management/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Setup(cfg.Server.Mode, cfg.Log.Level)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	// Initialize services
	inventoryRepo := postgres.NewInventoryRepository(db)
	restockRepo := postgres.NewRestockRepository(db)
	analyticsService := service.NewAnalyticsService(inventoryRepo, restockRepo, dashboardCache, service.SettingsFromConfig(cfg.Analytics))
	restockService := service.NewRestockService(analyticsService, restockRepo)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Analytics: analyticsService,
		Restocks:  restockService,
	}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("location", cfg.Analytics.Location.String()).
			Bool("cache", cfg.Cache.Enabled).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The server has 5 seconds to finish the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
