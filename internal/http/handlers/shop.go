package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"milyoner_webapp/internal/logger"
	"milyoner_webapp/internal/service"
	"milyoner_webapp/internal/shop"
)

// ShopItems lists the purchase catalog.
func (h *Handler) ShopItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": shop.Items()})
}

type buyRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// BuyItem purchases a catalog item, deducting the wallet atomically.
func (h *Handler) BuyItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req buyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := shop.Find(req.ItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown shop item"})
		return
	}

	owned, err := h.EconomyService.Purchase(c.Request.Context(), userID, item.AsInventory())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient funds"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			logger.Error("purchase failed", "user_id", userID, "item_id", req.ItemID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "purchase failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": owned})
}
