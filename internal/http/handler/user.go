package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wfdeller/feedback/internal/directory"
)

type UserHandler struct {
	directory directory.Service
}

func NewUserHandler(dir directory.Service) *UserHandler {
	return &UserHandler{directory: dir}
}

// GetUserInfo handles GET /api/user-info/:userId. Directory outages never
// surface here: Resolve degrades to a placeholder record, so the 500 path
// only fires on an empty id slipping past routing.
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	info, err := h.directory.Resolve(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve user info", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":  err.Error(),
			"userId":   userID,
			"userName": directory.FallbackName(userID),
		})
		return
	}

	c.JSON(http.StatusOK, info)
}

// InvalidateCache handles DELETE /api/user-info/:userId/cache. Administrative
// hook for when directory data changed out-of-band.
func (h *UserHandler) InvalidateCache(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	h.directory.Invalidate(userID)
	c.Status(http.StatusNoContent)
}
