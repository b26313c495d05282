package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
	hub                *ws.Hub
}

func NewParticipantHandler(participantService *services.ParticipantService, hub *ws.Hub) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService, hub: hub}
}

type RegisterRequest struct {
	UID      string `json:"uid" example:"d3f1c2aa-9b1e-4f5c-8a77-0c2b8f1e6d40"`
	FullName string `json:"full_name" binding:"required,min=1,max=100" example:"Sara Ali"`
	Category string `json:"category" binding:"required,oneof=board staff guest" example:"staff"`
}

// Register godoc
// @Summary      Register a participant
// @Description  Assigns the lowest free number in the category's range; registering a known uid returns the existing participant
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      200 {object} services.RegisterResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/participants [post]
func (h *ParticipantHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.participantService.Register(req.UID, req.FullName, req.Category)
	if err != nil {
		if errors.Is(err, services.ErrNumberPoolExhausted) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "all numbers in this category are taken"})
			return
		}
		if errors.Is(err, services.ErrRegistrationBusy) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "registration is busy, try again"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByUID godoc
// @Summary      Get participant by identity token
// @Tags         participants
// @Produce      json
// @Param        uid path string true "Identity token"
// @Success      200 {object} Participant
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/participants/{uid} [get]
func (h *ParticipantHandler) GetByUID(c *gin.Context) {
	participant, err := h.participantService.GetByUID(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "participant not found"})
		return
	}
	c.JSON(http.StatusOK, participant)
}

// List godoc
// @Summary      List all participants
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Participant
// @Router       /api/v1/admin/participants [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.participantService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list participants"})
		return
	}
	c.JSON(http.StatusOK, participants)
}

// Delete godoc
// @Summary      Delete a participant
// @Description  Removes the participant and cascades to their answers, likes and photos, then broadcasts participant:removed
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/participants/{id} [delete]
func (h *ParticipantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid participant id"})
		return
	}

	participant, err := h.participantService.Delete(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "participant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete participant"})
		return
	}

	// Every client receives this; only the session owning the uid acts on it.
	h.hub.Broadcast(ws.WSMessage{
		Type: ws.EventParticipantOut,
		Data: gin.H{"uid": participant.UID, "number": participant.Number},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "participant deleted"})
}
