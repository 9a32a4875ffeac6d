package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/dto/response"
	"github.com/kipkoech/salespoint-api/pkg/notify"
	"github.com/kipkoech/salespoint-api/pkg/utils"
)

// NotificationHandler exposes the register's transient notification stack
type NotificationHandler struct {
	hub *notify.Hub
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// ListActive returns the currently visible notifications
// @Summary Active notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListActive(c *gin.Context) {
	response.OK(c, "Active notifications", h.hub.Active())
}

// Dismiss closes a notification before its timer expires
// @Summary Dismiss notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification ID")
		return
	}

	if !h.hub.Close(id) {
		response.NotFound(c, "Notification not found")
		return
	}

	response.OK(c, "Notification dismissed", nil)
}
