package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"milyoner_webapp/internal/domain"
	"milyoner_webapp/internal/logger"
	"milyoner_webapp/internal/quiz"
	"milyoner_webapp/internal/service"
)

// questionView is the question as the client sees it. The correct answer
// never leaves the server while the session is live.
type questionView struct {
	ID         int64    `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty int      `json:"difficulty"`
	Category   string   `json:"category,omitempty"`
}

func viewOf(q *domain.Question) questionView {
	return questionView{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Category:   q.Category,
	}
}

func sessionView(s *quiz.Session, now time.Time) gin.H {
	used := make([]string, 0, len(s.Used))
	for kind := range s.Used {
		used = append(used, string(kind))
	}
	return gin.H{
		"session_id":        s.ID,
		"state":             s.State,
		"position":          s.Position,
		"prize":             quiz.Prize(s.Position),
		"safe_payout":       quiz.SafePayout(s.Position),
		"question":          viewOf(s.Current()),
		"deadline":          s.Deadline.UTC().Format(time.RFC3339),
		"remaining_seconds": int(s.Remaining(now).Seconds()),
		"used_lifelines":    used,
		"hidden_options":    s.HiddenOptions,
		"audience_advice":   s.AudienceAdvice,
	}
}

// StartQuiz begins a new 15-question session for the user.
func (h *Handler) StartQuiz(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.QuizService.Start(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "a quiz session is already in progress"})
		case errors.Is(err, service.ErrInsufficientContent):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "not enough questions available, try again later"})
		default:
			logger.Error("failed to start quiz", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start quiz"})
		}
		return
	}

	c.JSON(http.StatusCreated, sessionView(session, time.Now()))
}

// QuizState returns the current session as the client may see it.
func (h *Handler) QuizState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.QuizService.Get(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active quiz session"})
		return
	}

	c.JSON(http.StatusOK, sessionView(session, time.Now()))
}

type answerRequest struct {
	Option string `json:"option" binding:"required"`
}

// AnswerQuestion submits the chosen option for the current question.
func (h *Handler) AnswerQuestion(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.QuizService.Answer(c.Request.Context(), userID, req.Option)
	if err != nil {
		h.quizError(c, err)
		return
	}

	h.respondResult(c, userID, res)
}

type lifelineRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// UseLifeline consumes one of the three lifelines for the current question.
func (h *Handler) UseLifeline(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req lifelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	effect, err := h.QuizService.ApplyLifeline(c.Request.Context(), userID, quiz.Lifeline(req.Kind))
	if err != nil {
		h.quizError(c, err)
		return
	}

	resp := gin.H{"lifeline": req.Kind}
	if effect.Hidden != nil {
		resp["hidden_options"] = effect.Hidden
	}
	if effect.Advice != nil {
		resp["audience_advice"] = effect.Advice
	}
	if effect.NewQuestion != nil {
		resp["question"] = viewOf(effect.NewQuestion)
	}
	c.JSON(http.StatusOK, resp)
}

// WithdrawQuiz walks away with the prize of the last answered question.
func (h *Handler) WithdrawQuiz(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := h.QuizService.Withdraw(c.Request.Context(), userID)
	if err != nil {
		h.quizError(c, err)
		return
	}

	h.respondResult(c, userID, res)
}

// ExpireQuestion resolves a timed-out question once the deadline passed.
func (h *Handler) ExpireQuestion(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := h.QuizService.Expire(c.Request.Context(), userID)
	if err != nil {
		h.quizError(c, err)
		return
	}

	h.respondResult(c, userID, res)
}

// respondResult returns the move outcome; a terminal state also carries the
// refreshed balances so the client can render the payout immediately.
func (h *Handler) respondResult(c *gin.Context, userID int64, res quiz.Result) {
	resp := gin.H{"result": res}
	if res.State != quiz.StateActive {
		if user, err := h.UserRepo.GetByID(c.Request.Context(), userID); err == nil {
			resp["user"] = user
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) quizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		c.JSON(http.StatusNotFound, gin.H{"error": "no active quiz session"})
	case errors.Is(err, quiz.ErrNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "session already finished"})
	case errors.Is(err, quiz.ErrOptionHidden):
		c.JSON(http.StatusBadRequest, gin.H{"error": "option was eliminated by fifty-fifty"})
	case errors.Is(err, quiz.ErrUnknownOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": "option is not part of the question"})
	case errors.Is(err, quiz.ErrLifelineAlreadyUsed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "lifeline already used"})
	case errors.Is(err, quiz.ErrUnknownLifeline):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown lifeline"})
	case errors.Is(err, quiz.ErrDeadlineNotReached):
		c.JSON(http.StatusBadRequest, gin.H{"error": "question deadline not reached"})
	default:
		logger.Error("quiz operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "quiz operation failed"})
	}
}
