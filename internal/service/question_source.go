package service

import (
	"context"
	"errors"

	"milyoner_webapp/internal/ai"
	"milyoner_webapp/internal/domain"
	"milyoner_webapp/internal/logger"
	"milyoner_webapp/internal/repository"
)

// ErrInsufficientContent means neither the pool nor the generator could
// produce a question for some tier; a session cannot start.
var ErrInsufficientContent = errors.New("not enough questions to build a session")

// QuestionSource is the collaborator the quiz engine draws questions and
// audience advice from. Injected so tests can substitute a deterministic one.
type QuestionSource interface {
	FetchByDifficulty(ctx context.Context, tier int) (*domain.Question, error)
	FetchReplacement(ctx context.Context, tier int, excludeID int64) (*domain.Question, error)
	Generate(ctx context.Context, tier int, category string) (*domain.Question, error)
	AdviseAudience(ctx context.Context, q *domain.Question) (map[string]int, error)
}

// PoolSource serves questions from the stored pool, reaching for the Gemini
// client when the pool runs dry or a fresh question is asked for.
type PoolSource struct {
	repo *repository.QuestionRepository
	ai   *ai.Client
}

func NewPoolSource(repo *repository.QuestionRepository, aiClient *ai.Client) *PoolSource {
	return &PoolSource{repo: repo, ai: aiClient}
}

func (s *PoolSource) FetchByDifficulty(ctx context.Context, tier int) (*domain.Question, error) {
	return s.repo.GetRandomByDifficulty(ctx, tier)
}

func (s *PoolSource) FetchReplacement(ctx context.Context, tier int, excludeID int64) (*domain.Question, error) {
	// prefer a freshly generated question for the swap lifeline, falling
	// back to the stored pool when the provider is down
	if q, err := s.ai.GenerateQuestion(ctx, tier, ""); err == nil {
		return q, nil
	}
	return s.repo.GetRandomByDifficultyExcluding(ctx, tier, excludeID)
}

func (s *PoolSource) Generate(ctx context.Context, tier int, category string) (*domain.Question, error) {
	q, err := s.ai.GenerateQuestion(ctx, tier, category)
	if err != nil {
		logger.Warn("question generation failed", "tier", tier, "error", err)
		return nil, err
	}
	return q, nil
}

func (s *PoolSource) AdviseAudience(ctx context.Context, q *domain.Question) (map[string]int, error) {
	return s.ai.AdviseAudience(ctx, q)
}

// BuildLadderQuestions assembles one question per tier 1..15. Pool first,
// generator as fallback; a tier nobody can serve aborts the whole build with
// ErrInsufficientContent.
func BuildLadderQuestions(ctx context.Context, src QuestionSource) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, domain.MaxDifficulty)
	for tier := domain.MinDifficulty; tier <= domain.MaxDifficulty; tier++ {
		q, err := src.FetchByDifficulty(ctx, tier)
		if err != nil {
			if !errors.Is(err, repository.ErrNoContent) {
				return nil, err
			}
			q, err = src.Generate(ctx, tier, "")
			if err != nil {
				return nil, ErrInsufficientContent
			}
		}
		questions = append(questions, *q)
	}
	return questions, nil
}
