package main

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/config"
	"github.com/huangang/collabhub/internal/middleware"
	"github.com/huangang/collabhub/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)
	r.GET("/metrics", svc.metricsHandler.Metrics)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(), middleware.AuditLog())
	{
		// Profiles
		api.GET("/profiles/me", svc.profileHandler.Me)
		api.PUT("/profiles/me", svc.profileHandler.UpdateMe)

		// Catalog
		api.GET("/catalog/options", svc.projectHandler.Options)

		// Projects
		api.GET("/projects", svc.projectHandler.List)
		api.POST("/projects", svc.projectHandler.Create)
		api.GET("/projects/:id", svc.projectHandler.GetByID)
		api.PUT("/projects/:id", svc.projectHandler.Update)
		api.GET("/projects/:id/match", svc.projectHandler.Match)

		// Project members
		api.GET("/projects/:id/members", svc.memberHandler.List)
		api.GET("/projects/:id/membership", svc.memberHandler.Mine)
		api.POST("/projects/:id/apply", svc.memberHandler.Apply)
		api.POST("/members/:memberID/accept", svc.memberHandler.Accept)
		api.POST("/members/:memberID/reject", svc.memberHandler.Reject)

		// Assistant
		assistant := api.Group("/assistant", svc.assistantLimiter.Middleware())
		{
			assistant.POST("/describe", svc.assistantHandler.Describe)
			assistant.POST("/breakdown", svc.assistantHandler.Breakdown)
			assistant.POST("/match", svc.assistantHandler.Match)
		}

		// Notifications
		api.GET("/notifications", svc.notificationHandler.List)
		api.POST("/notifications/:id/read", svc.notificationHandler.MarkRead)
	}
}
