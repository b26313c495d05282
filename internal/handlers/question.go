package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	hub             *ws.Hub
}

func NewQuestionHandler(questionService *services.QuestionService, hub *ws.Hub) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, hub: hub}
}

type QuestionRequest struct {
	Text         string   `json:"text" binding:"required" example:"Which hall hosts the finale?"`
	Options      []string `json:"options" binding:"required,min=2,max=6"`
	CorrectIndex int      `json:"correct_index" example:"2"`
}

// GetActive godoc
// @Summary      Get the active trivia question
// @Description  Returns null when no question is live; options come structured and ordered
// @Tags         questions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/questions/active [get]
func (h *QuestionHandler) GetActive(c *gin.Context) {
	question, err := h.questionService.GetActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load question"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question})
}

// List godoc
// @Summary      List trivia questions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Question
// @Router       /api/v1/admin/questions [get]
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Create godoc
// @Summary      Create a trivia question
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.Create(req.Text, req.Options, req.CorrectIndex)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, question)
}

// Update godoc
// @Summary      Update a trivia question
// @Description  Correctness already recorded on answers is frozen and does not change
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/questions/{id} [put]
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.Update(uint(id), req.Text, req.Options, req.CorrectIndex)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "question not found"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, question)
}

// Delete godoc
// @Summary      Delete a trivia question
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Router       /api/v1/admin/questions/{id} [delete]
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.questionService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete question"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

// Activate godoc
// @Summary      Activate a trivia question
// @Description  Deactivates every other question in the same transaction and broadcasts the full question so all sessions converge without a fetch
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/questions/{id}/activate [post]
func (h *QuestionHandler) Activate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	question, err := h.questionService.Activate(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to activate question"})
		return
	}

	// Full payload, not just the ID: connected sessions reset their timer
	// and answered state from this frame, latecomers fetch on page load.
	h.hub.Broadcast(ws.WSMessage{
		Type: ws.EventQuestionActive,
		Data: question,
	})

	c.JSON(http.StatusOK, question)
}
