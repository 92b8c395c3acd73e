package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Hamzahxou/api-x/internal/service"
	"github.com/Hamzahxou/api-x/pkg/middleware"
	"github.com/Hamzahxou/api-x/pkg/response"
)

// NotificationHandler handles notification HTTP requests.
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	subject := middleware.GetSubject(c)
	notifications, err := h.notifications.List(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to list notifications")
		return
	}
	response.Success(c, gin.H{"notifications": notifications})
}

// Delete handles DELETE /api/notifications/:notificationId.
func (h *NotificationHandler) Delete(c *gin.Context) {
	subject := middleware.GetSubject(c)
	err := h.notifications.Delete(c.Request.Context(), subject, c.Param("notificationId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound), errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "notification not found")
		default:
			response.InternalError(c, "failed to delete notification")
		}
		return
	}
	response.Success(c, gin.H{"message": "notification deleted successfully"})
}
