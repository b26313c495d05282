package handlers

import (
	"errors"
	"net/http"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	hub             *ws.Hub
}

func NewActivityHandler(activityService *services.ActivityService, hub *ws.Hub) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, hub: hub}
}

type ToggleActivityRequest struct {
	Name   string `json:"name" binding:"required" example:"trivia"`
	IsLive bool   `json:"is_live"`
}

// List godoc
// @Summary      List activity flags
// @Description  Current live/dormant state of every known activity
// @Tags         activities
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activityService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load activities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// Toggle godoc
// @Summary      Toggle an activity live or dormant
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ToggleActivityRequest true "Toggle data"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/activities/toggle [post]
func (h *ActivityHandler) Toggle(c *gin.Context) {
	var req ToggleActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	activity, err := h.activityService.Toggle(req.Name, req.IsLive)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown activity"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to toggle activity"})
		return
	}

	h.hub.Broadcast(ws.WSMessage{
		Type: ws.EventActivityChange,
		Data: gin.H{"name": activity.Name, "is_live": activity.IsLive},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "activity updated"})
}
