package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"milyoner_webapp/internal/domain"
	"milyoner_webapp/internal/logger"
)

type generateQuestionRequest struct {
	Difficulty int    `json:"difficulty" binding:"required"`
	Category   string `json:"category"`
}

// GenerateQuestion proxies a question request to the generation provider and
// stores the validated result in the pool. The key never reaches the client.
func (h *Handler) GenerateQuestion(c *gin.Context) {
	var req generateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Difficulty < domain.MinDifficulty || req.Difficulty > domain.MaxDifficulty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty must be between 1 and 15"})
		return
	}

	q, err := h.AIClient.GenerateQuestion(c.Request.Context(), req.Difficulty, req.Category)
	if err != nil {
		logger.Warn("question generation failed", "difficulty", req.Difficulty, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "question generation unavailable"})
		return
	}

	if err := h.QuestionRepo.Create(c.Request.Context(), q); err != nil {
		logger.Error("failed to store generated question", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"question": q})
}
