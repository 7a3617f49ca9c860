package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/middleware"
	"github.com/creatorhub/creator-review-api/internal/services"
	"github.com/creatorhub/creator-review-api/internal/utils"
)

// NotificationHandler manages broadcast announcements.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns announcements, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationService.ListNotifications(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    utils.NewPaginationResponse(params, total),
	})
}

// CreateNotification publishes a new announcement.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateNotificationRequest struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	n, err := h.notificationService.CreateNotification(req.Title, req.Message, actor.Username)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, n)
}

// UpdateNotification edits an announcement.
func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	type UpdateNotificationRequest struct {
		Title   *string `json:"title"`
		Message *string `json:"message"`
	}

	var req UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	n, err := h.notificationService.UpdateNotification(id, req.Title, req.Message)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// DeleteNotification removes an announcement.
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.DeleteNotification(id); err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, "Notification not found")
	case errors.Is(err, services.ErrNotificationInvalid):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
