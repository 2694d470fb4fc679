package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/middleware"
	"github.com/huangang/collabhub/internal/services"
	"github.com/huangang/collabhub/pkg/response"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's inbox
// GET /api/notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	items, err := h.notifications.List(c.Request.Context(), middleware.GetUserID(c), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	response.List(c, items)
}

// MarkRead marks one notification as read
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "notification marked as read"})
}
