package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/service"
	"github.com/marvinpacsands/Project-List-Designers/pkg/response"
)

// NotificationHandler notification delivery endpoints
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications returns the caller's unread notifications, newest first
// GET /api/notifications?email=&name=
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil || (req.Email == "" && req.Name == "") {
		response.BadRequest(c, 30001, "email or name is required")
		return
	}

	list, err := h.notificationSvc.ListUnread(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// AcknowledgeNotification marks one notification read for the caller
// POST /api/notifications/ack
func (h *NotificationHandler) AcknowledgeNotification(c *gin.Context) {
	var req dto.AckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "id and email are required")
		return
	}

	if err := h.notificationSvc.Acknowledge(c.Request.Context(), req.ID.String(), req.Email); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
