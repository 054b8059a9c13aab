package router

import (
	"github.com/gin-gonic/gin"

	"github.com/wfdeller/feedback/internal/http/handler"
	"github.com/wfdeller/feedback/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		feedbackHandler := handler.NewFeedbackHandler(services.Feedback())
		FeedbackRouter(api.Group("/feedback-requests"), feedbackHandler)

		userHandler := handler.NewUserHandler(services.Directory())
		UserRouter(api.Group("/user-info"), userHandler)
	}
}
