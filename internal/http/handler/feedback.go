package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wfdeller/feedback/internal/model"
	"github.com/wfdeller/feedback/internal/service"
	"github.com/wfdeller/feedback/internal/store"
)

const notFoundMessage = "Feedback request not found"

type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

type createFeedbackRequest struct {
	UserID        string `json:"userId"`
	ApplicationID string `json:"applicationId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
}

// Create handles POST /api/feedback-requests
func (h *FeedbackHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	created, err := h.feedbackService.Submit(ctx, service.SubmitParams{
		UserID:        req.UserID,
		ApplicationID: req.ApplicationID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      model.Priority(req.Priority),
	})
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to create feedback request", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create feedback request"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/feedback-requests?userId=&applicationId=
func (h *FeedbackHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := store.Filter{
		UserID:        c.Query("userId"),
		ApplicationID: c.Query("applicationId"),
	}

	requests, err := h.feedbackService.List(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list feedback requests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list feedback requests"})
		return
	}

	if requests == nil {
		requests = []model.FeedbackRequest{}
	}
	c.JSON(http.StatusOK, requests)
}

// Get handles GET /api/feedback-requests/:id
func (h *FeedbackHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		return
	}

	req, err := h.feedbackService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
			return
		}
		slog.ErrorContext(ctx, "failed to get feedback request", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get feedback request"})
		return
	}

	c.JSON(http.StatusOK, req)
}

type updateFeedbackRequest struct {
	Title          *string             `json:"title"`
	Description    *string             `json:"description"`
	Priority       *string             `json:"priority"`
	FeedbackStatus *string             `json:"feedbackStatus"`
	JiraTicketID   *string             `json:"jiraTicketId"`
	Status         []model.StatusEntry `json:"status"`
}

// Update handles PUT /api/feedback-requests/:id. Body fields are
// shallow-merged onto the record; a status array replaces the history
// wholesale, matching the legacy contract.
func (h *FeedbackHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	params := store.UpdateParams{
		Title:        req.Title,
		Description:  req.Description,
		JiraTicketID: req.JiraTicketID,
		Status:       req.Status,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		if !p.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown priority: " + *req.Priority})
			return
		}
		params.Priority = &p
	}
	if req.FeedbackStatus != nil {
		st := model.FeedbackStatus(*req.FeedbackStatus)
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown feedback status: " + *req.FeedbackStatus})
			return
		}
		params.FeedbackStatus = &st
	}

	updated, err := h.feedbackService.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
			return
		}
		slog.ErrorContext(ctx, "failed to update feedback request", "error", err, "id", id)
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to update feedback request"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Detail string `json:"detail"`
}

// ChangeStatus handles POST /api/feedback-requests/:id/status
func (h *FeedbackHandler) ChangeStatus(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request: status is required"})
		return
	}

	updated, err := h.feedbackService.ChangeStatus(ctx, id, req.Status, req.Detail)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
			return
		}
		slog.ErrorContext(ctx, "failed to change status", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to change status"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// parseID reads the :id path param. An unparsable id cannot reference any
// record, so it gets the same 404 the caller would see for a missing one.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
		return 0, false
	}
	return id, true
}
