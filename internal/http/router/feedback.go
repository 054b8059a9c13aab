package router

import (
	"github.com/gin-gonic/gin"

	"github.com/wfdeller/feedback/internal/http/handler"
)

// FeedbackRouter sets up feedback request routes
func FeedbackRouter(rg *gin.RouterGroup, h *handler.FeedbackHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/status", h.ChangeStatus)
}
