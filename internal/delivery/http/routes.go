package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lunchradar/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// Kept at the top level for compatibility with existing clients.
	router.POST("/summarize", handler.Summarize)

	v1 := router.Group("/api/v1")
	{
		subscriptions := v1.Group("/subscriptions")
		{
			subscriptions.POST("", handler.RegisterSubscription)
			subscriptions.DELETE("", handler.UnregisterSubscription)
		}
	}

	return router
}
