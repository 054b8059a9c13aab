package router

import (
	"github.com/gin-gonic/gin"

	"github.com/wfdeller/feedback/internal/http/handler"
)

// UserRouter sets up directory lookup routes
func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.GET("/:userId", h.GetUserInfo)
	rg.DELETE("/:userId/cache", h.InvalidateCache)
}
