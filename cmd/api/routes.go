package main

import (
	"context"
	"net/http"
	"time"

	"marketplace-listings/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.setupAPIRoutes()
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if a.Database != nil {
			if err := a.Database.Ping(ctx); err != nil {
				logger.Get().Errorf("MongoDB ping failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "MongoDB unavailable"})
				return
			}
		}

		if err := a.Store.Ping(ctx); err != nil {
			logger.Get().Errorf("Cache ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Cache unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		properties := api.Group("/properties")
		{
			properties.GET("", a.PropertyHandler.GetProperties)
			properties.POST("/search", a.PropertyHandler.SearchCollection)
			properties.POST("/normalize", a.PropertyHandler.NormalizeCollection)
			properties.POST("/refresh", a.PropertyHandler.RefreshProperties)
			properties.GET("/:id", a.PropertyHandler.GetPropertyByID)
		}
	}
}
