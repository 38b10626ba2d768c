package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"milyoner_webapp/internal/logger"
)

// Profile returns the user row plus inventory, recent games and the daily
// passive income rate of everything owned.
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	inventory, err := h.InventoryRepo.GetByUser(ctx, userID)
	if err != nil {
		logger.Error("failed to load inventory", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	history, err := h.HistoryRepo.GetByUser(ctx, userID, 10)
	if err != nil {
		logger.Error("failed to load game history", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	passive, err := h.InventoryRepo.TotalPassiveIncome(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":           user,
		"total_wealth":   user.TotalWealth(),
		"inventory":      inventory,
		"recent_games":   history,
		"passive_income": passive,
	})
}

// CollectIncome credits one full day of passive income into the wallet.
func (h *Handler) CollectIncome(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	collected, err := h.EconomyService.CollectPassiveIncome(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to collect passive income", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect income"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collected": collected})
}
