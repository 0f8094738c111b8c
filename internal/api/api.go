package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ngson927/Greatea-smart-management/internal/api/handlers"
	"github.com/ngson927/Greatea-smart-management/internal/api/middleware"
)

type Services struct {
	Analytics handlers.AnalyticsReader
	Restocks  handlers.RestockCreator
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Analytics != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/forecast", analyticsHandler.GetForecast)
				analyticsGroup.GET("/suppliers", analyticsHandler.GetSuppliers)
				analyticsGroup.GET("/expenses", analyticsHandler.GetExpenses)
				analyticsGroup.GET("/stock-alerts", analyticsHandler.GetStockAlerts)
				analyticsGroup.GET("/expiring-soon", analyticsHandler.GetExpiringSoon)
			}
			apiGroup.GET("/dashboard", analyticsHandler.GetDashboard)
		}

		if services.Restocks != nil {
			restockHandler := handlers.NewRestockHandler(services.Restocks)
			apiGroup.POST("/restocks/from-forecast", restockHandler.CreateFromForecast)
		}
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	cfg := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			cfg.AllowOrigins = nil
			cfg.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			cfg.AllowOrigins = normalizedOrigins
		}
	}
	return cfg
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
