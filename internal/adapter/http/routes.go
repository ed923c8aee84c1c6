package http

import (
	"github.com/gin-gonic/gin"

	"taskorganizer/internal/adapter/http/handlers"
	"taskorganizer/internal/adapter/http/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	reviewHandler *handlers.ReviewHandler,
) {
	r.GET("/health", healthHandler.CheckHealth)

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.POST("/tasks/quick", taskHandler.QuickAdd)
		api.POST("/tasks/import/git", taskHandler.ImportCommits)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/:id/start", taskHandler.StartTimer)
		api.POST("/tasks/:id/pause", taskHandler.PauseTimer)
		api.POST("/tasks/:id/complete", taskHandler.CompleteTask)

		api.GET("/briefing", taskHandler.Briefing)

		api.GET("/reviews/daily", reviewHandler.ListDailyReviews)
		api.POST("/reviews/daily", reviewHandler.GenerateDailyReview)
		api.GET("/reviews/daily/:date", reviewHandler.GetDailyReview)
		api.GET("/reviews/weekly", reviewHandler.ListWeeklyReviews)
		api.POST("/reviews/weekly", reviewHandler.GenerateWeeklyReview)
	}
}
