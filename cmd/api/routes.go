package main

import (
	"context"
	"net/http"
	"time"

	"spacia-portal/internal/middleware"
	"spacia-portal/pkg/logger"

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

		if a.redisClient != nil {
			if _, err := a.redisClient.Ping(ctx).Result(); err != nil {
				logger.GlobalLogger.Errorf("Redis ping failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "api": a.client.BaseURL()})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		// Public routes
		api.POST("/auth/login", a.UserHandler.Login)
		api.POST("/auth/register", a.UserHandler.Register)
		api.POST("/auth/logout", a.UserHandler.Logout)
		api.GET("/auth/me", a.UserHandler.Me)

		api.GET("/master", a.PropertyHandler.MasterData)
		api.GET("/properties", a.PropertyHandler.ListProperties)
		api.POST("/properties/details", a.PropertyHandler.PropertyDetails)
		api.POST("/properties/:id/contact", a.PropertyHandler.ContactOwner)

		// Routes for signed-in users
		protected := api.Group("/properties")
		protected.Use(middleware.RequireSession())
		{
			protected.GET("/mine", a.PropertyHandler.MyProperties)
			protected.POST("", a.PropertyHandler.CreateProperty)
			protected.POST("/:id/edit", a.PropertyHandler.EditProperty)
			protected.PUT("/:id", a.PropertyHandler.UpdateProperty)
			protected.DELETE("/:id", a.PropertyHandler.DeleteProperty)
		}
	}
}
