package handlers

import (
	"milyoner_webapp/internal/ai"
	"milyoner_webapp/internal/repository"
	"milyoner_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB             *pgxpool.Pool
	UserRepo       *repository.UserRepository
	QuestionRepo   *repository.QuestionRepository
	InventoryRepo  *repository.InventoryRepository
	HistoryRepo    *repository.GameHistoryRepository
	EconomyService *service.EconomyService
	QuizService    *service.QuizService
	AIClient       *ai.Client
}

func NewHandler(db *pgxpool.Pool, aiClient *ai.Client) *Handler {
	questionRepo := repository.NewQuestionRepository(db)
	historyRepo := repository.NewGameHistoryRepository(db)
	economy := service.NewEconomyService(db)
	source := service.NewPoolSource(questionRepo, aiClient)

	return &Handler{
		DB:             db,
		UserRepo:       repository.NewUserRepository(db),
		QuestionRepo:   questionRepo,
		InventoryRepo:  repository.NewInventoryRepository(db),
		HistoryRepo:    historyRepo,
		EconomyService: economy,
		QuizService:    service.NewQuizService(source, economy, historyRepo),
		AIClient:       aiClient,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
