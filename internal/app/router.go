package app

import (
	"lesson_qa_backend/docs"
	"lesson_qa_backend/internal/config"
	"lesson_qa_backend/internal/middleware"
	"lesson_qa_backend/internal/model"

	"lesson_qa_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// Reads and votes take an actor when one is present but never require one.
		open := api.Group("/")
		open.Use(middleware.TryAuthMiddleware(cfg))
		{
			open.GET("/lessons/:lessonId/questions", c.qa.ListThreads)
			open.GET("/questions/:questionId", c.qa.GetThread)
			open.POST("/questions/:questionId/upvote", c.qa.UpvoteQuestion)
			open.POST("/answers/:answerId/upvote", c.qa.UpvoteAnswer)
		}

		// Writes require an authenticated actor.
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(cfg))
		{
			authorized.POST("/lessons/:lessonId/questions", c.qa.CreateQuestion)
			authorized.POST("/questions/:questionId/answers", c.qa.AnswerQuestion)
			authorized.POST("/answers/:answerId/accept", middleware.RoleMiddleware(model.Instructor), c.qa.AcceptAnswer)
			authorized.POST("/qa/attachments/upload", c.qa.UploadAttachment)
		}
	}
}
