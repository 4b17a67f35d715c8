package app

import (
	"gcse_prep_backend/internal/config"
	"gcse_prep_backend/internal/middleware"
	"gcse_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// Everything the engine does is scoped to an authenticated learner.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		practice := authGroup.Group("/practice")
		{
			practice.POST("/sessions", c.practice.StartSession)
			practice.POST("/sessions/:id/answers", c.practice.SubmitAnswer)
			practice.POST("/sessions/:id/complete", c.practice.CompleteSession)
			practice.GET("/weak-questions", c.practice.GetWeakQuestions)
		}

		progress := authGroup.Group("/progress")
		{
			progress.POST("/update", c.progress.UpdateProgress)
			progress.GET("/streak", c.progress.GetStreak)
		}

		authGroup.POST("/lessons/complete", c.progress.CompleteLesson)

		authGroup.GET("/predictions", c.prediction.GetPredictions)
		authGroup.PUT("/enrollments/:courseSlug/target", c.prediction.SetTargets)
	}
}
