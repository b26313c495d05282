package handlers

import (
	"net/http"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	hub                 *ws.Hub
}

func NewNotificationHandler(notificationService *services.NotificationService, hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, hub: hub}
}

type SendNotificationRequest struct {
	Title   string `json:"title" example:"Lottery starting"`
	Message string `json:"message" binding:"required" example:"Head to the main hall"`
}

// Send godoc
// @Summary      Broadcast a notification
// @Description  Fire-and-forget: sessions offline at send time never receive it
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendNotificationRequest true "Notification"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/notifications [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	notification, err := h.notificationService.Send(req.Title, req.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(ws.WSMessage{
		Type: ws.EventNotification,
		Data: gin.H{"title": notification.Title, "message": notification.Message},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "notification sent"})
}
