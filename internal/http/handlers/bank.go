package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"milyoner_webapp/internal/logger"
	"milyoner_webapp/internal/service"
)

type bankRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// Deposit moves money from the wallet into the bank.
func (h *Handler) Deposit(c *gin.Context) {
	h.bankTransfer(c, h.EconomyService.Deposit)
}

// WithdrawBank moves money from the bank back into the wallet.
func (h *Handler) WithdrawBank(c *gin.Context) {
	h.bankTransfer(c, h.EconomyService.WithdrawBank)
}

func (h *Handler) bankTransfer(c *gin.Context, op func(ctx context.Context, userID, amount int64) error) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req bankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := op(c.Request.Context(), userID, req.Amount); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient funds"})
		default:
			logger.Error("bank transfer failed", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "transfer failed"})
		}
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet_balance": user.WalletBalance,
		"bank_balance":   user.BankBalance,
	})
}
