package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	photoService       *services.PhotoService
	participantService *services.ParticipantService
	hub                *ws.Hub
}

func NewPhotoHandler(photoService *services.PhotoService, participantService *services.ParticipantService, hub *ws.Hub) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, participantService: participantService, hub: hub}
}

type CreatePhotoRequest struct {
	UID string `json:"uid" binding:"required" example:"d3f1c2aa-9b1e-4f5c-8a77-0c2b8f1e6d40"`
	URL string `json:"url" binding:"required" example:"/uploads/8f2f1f.jpg"`
}

// Create godoc
// @Summary      Record an uploaded photo
// @Description  The storage service posts the stored object's reference here; the photo starts pending moderation
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        request body CreatePhotoRequest true "Photo reference"
// @Success      200 {object} Photo
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/photos [post]
func (h *PhotoHandler) Create(c *gin.Context) {
	var req CreatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	participant, err := h.participantService.GetByUID(req.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "participant not found"})
		return
	}

	photo, err := h.photoService.Create(participant.ID, req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// Moderators get the pending photo pushed; participants see nothing
	// until approval.
	h.hub.Broadcast(ws.WSMessage{Type: ws.EventPhotoPending, Data: photo})

	c.JSON(http.StatusOK, photo)
}

// ListApproved godoc
// @Summary      List approved gallery photos
// @Description  Ordered by like count, then newest
// @Tags         photos
// @Produce      json
// @Success      200 {array} Photo
// @Router       /api/v1/photos [get]
func (h *PhotoHandler) ListApproved(c *gin.Context) {
	photos, err := h.photoService.ListApproved()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list photos"})
		return
	}
	c.JSON(http.StatusOK, photos)
}

// ListPending godoc
// @Summary      List photos awaiting moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Photo
// @Router       /api/v1/admin/photos/pending [get]
func (h *PhotoHandler) ListPending(c *gin.Context) {
	photos, err := h.photoService.ListPending()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list photos"})
		return
	}
	c.JSON(http.StatusOK, photos)
}

// Approve godoc
// @Summary      Approve a pending photo
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Photo ID"
// @Success      200 {object} Photo
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/photos/{id}/approve [post]
func (h *PhotoHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid photo id"})
		return
	}

	photo, err := h.photoService.Approve(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to approve photo"})
		return
	}

	h.hub.Broadcast(ws.WSMessage{Type: ws.EventPhotoApproved, Data: photo})

	c.JSON(http.StatusOK, photo)
}

// Delete godoc
// @Summary      Delete a photo and its likes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Photo ID"
// @Success      200 {object} MessageResponse
// @Router       /api/v1/admin/photos/{id} [delete]
func (h *PhotoHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid photo id"})
		return
	}

	if err := h.photoService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete photo"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "photo deleted"})
}
