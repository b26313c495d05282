package handlers

import (
	"net/http"

	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService  *services.StatsService
	answerService *services.AnswerService
	presence      *ws.Presence
}

func NewStatsHandler(statsService *services.StatsService, answerService *services.AnswerService, presence *ws.Presence) *StatsHandler {
	return &StatsHandler{statsService: statsService, answerService: answerService, presence: presence}
}

// Stats godoc
// @Summary      Event dashboard totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} services.Stats
// @Router       /api/v1/admin/stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Collect(h.presence.Count())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to collect stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Leaderboard godoc
// @Summary      Trivia standings
// @Description  Most correct answers first, ties broken by total response time
// @Tags         leaderboard
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/leaderboard [get]
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	entries, err := h.answerService.Leaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
