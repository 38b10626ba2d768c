package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const leaderboardSize = 20

// GetLeaderboard returns the top users by total wealth and by level.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	ctx := c.Request.Context()

	byWealth, err := h.UserRepo.GetTopByWealth(ctx, leaderboardSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	byLevel, err := h.UserRepo.GetTopByLevel(ctx, leaderboardSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"by_wealth": byWealth,
		"by_level":  byLevel,
	})
}
