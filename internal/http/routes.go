package http

import (
	"time"

	"milyoner_webapp/internal/ai"
	"milyoner_webapp/internal/config"
	"milyoner_webapp/internal/http/handlers"
	"milyoner_webapp/internal/http/middleware"
	"milyoner_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires every endpoint onto the engine and returns the handler
// so the caller can reach the shared services.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, aiClient *ai.Client, version string, cfg *config.Config) *handlers.Handler {
	h := handlers.NewHandler(db, aiClient)
	healthHandler := handlers.NewHealthHandler(db, h.QuizService, version)

	// redis limiter when configured, in-memory fixed window otherwise
	limiter := middleware.RedisRateLimit
	if cfg.RedisAddr == "" {
		limiter = middleware.SimpleRateLimit
	}
	apiRL := limiter(cfg.APIRateLimit, time.Minute)
	authRL := limiter(cfg.AuthRateLimit, time.Minute)
	quizRL := limiter(cfg.QuizRateLimit, time.Minute)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(apiRL)

	// Auth
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// User profile and passive income
	api.GET("/user/profile", middleware.JWT(), h.Profile)
	api.POST("/user/collect-income", middleware.JWT(), h.CollectIncome)

	// Quiz ladder
	quizGroup := api.Group("/quiz", middleware.JWT(), quizRL)
	{
		quizGroup.POST("/start", h.StartQuiz)
		quizGroup.GET("/state", h.QuizState)
		quizGroup.POST("/answer", h.AnswerQuestion)
		quizGroup.POST("/lifeline", h.UseLifeline)
		quizGroup.POST("/withdraw", h.WithdrawQuiz)
		quizGroup.POST("/expire", h.ExpireQuestion)
	}

	// Shop
	api.GET("/shop/items", h.ShopItems)
	api.POST("/shop/buy", middleware.JWT(), h.BuyItem)

	// Bank
	api.POST("/bank/deposit", middleware.JWT(), h.Deposit)
	api.POST("/bank/withdraw", middleware.JWT(), h.WithdrawBank)

	// Leaderboard
	api.GET("/leaderboard", h.GetLeaderboard)

	// Question generation proxy
	api.POST("/ai/generate-question", middleware.JWT(), h.GenerateQuestion)

	// Countdown stream
	r.GET("/ws", ws.Countdown(h.QuizService))

	return h
}
