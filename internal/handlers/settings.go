package handlers

import (
	"net/http"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
	hub             *ws.Hub
}

func NewSettingsHandler(settingsService *services.SettingsService, hub *ws.Hub) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, hub: hub}
}

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required" example:"event_title"`
	Value string `json:"value" example:"Annual Gathering 2026"`
}

// GetSettings godoc
// @Summary      Get event settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSetting godoc
// @Summary      Update one event setting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateSettingRequest true "Setting"
// @Success      200 {object} MessageResponse
// @Router       /api/v1/admin/settings [post]
func (h *SettingsHandler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.settingsService.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update setting"})
		return
	}

	h.hub.Broadcast(ws.WSMessage{
		Type: ws.EventSettingsUpdate,
		Data: gin.H{"key": req.Key, "value": req.Value},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "setting updated"})
}
