package handlers

import (
	"errors"
	"net/http"

	"github.com/almahdy86/t-event/internal/services"

	"github.com/gin-gonic/gin"
)

type LotteryHandler struct {
	lotteryService *services.LotteryService
}

func NewLotteryHandler(lotteryService *services.LotteryService) *LotteryHandler {
	return &LotteryHandler{lotteryService: lotteryService}
}

type DrawRequest struct {
	Winners int `json:"winners" binding:"required,min=1" example:"3"`
}

// Eligible godoc
// @Summary      List participants eligible for the lottery
// @Description  Everyone with at least one correct trivia answer
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/lottery/eligible [get]
func (h *LotteryHandler) Eligible(c *gin.Context) {
	pool, err := h.lotteryService.EligiblePool()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load eligible pool"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": pool})
}

// Draw godoc
// @Summary      Draw lottery winners
// @Description  Uniform sampling without replacement; rank 1 is drawn first
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DrawRequest true "Number of winners"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/admin/lottery/draw [post]
func (h *LotteryHandler) Draw(c *gin.Context) {
	var req DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	winners, err := h.lotteryService.Draw(req.Winners)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientEligible) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "not enough eligible participants"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "draw failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winners": winners})
}
