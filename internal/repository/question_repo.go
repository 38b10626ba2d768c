package repository

import (
	"context"
	"encoding/json"
	"errors"

	"milyoner_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoContent means the stored pool has no question for the requested tier.
var ErrNoContent = errors.New("no questions for difficulty tier")

type QuestionRepository struct {
	db *pgxpool.Pool
}

func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetRandomByDifficulty picks one stored question of the given tier uniformly
// at random.
func (r *QuestionRepository) GetRandomByDifficulty(ctx context.Context, difficulty int) (*domain.Question, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, text, options, correct_answer, difficulty, category
		 FROM questions
		 WHERE difficulty = $1
		 ORDER BY RANDOM()
		 LIMIT 1`,
		difficulty)

	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoContent
	}
	return q, err
}

// GetRandomByDifficultyExcluding is GetRandomByDifficulty skipping one id,
// used by the swap lifeline so the replacement differs from the current
// question whenever the pool allows it.
func (r *QuestionRepository) GetRandomByDifficultyExcluding(ctx context.Context, difficulty int, excludeID int64) (*domain.Question, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, text, options, correct_answer, difficulty, category
		 FROM questions
		 WHERE difficulty = $1 AND id != $2
		 ORDER BY RANDOM()
		 LIMIT 1`,
		difficulty, excludeID)

	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// pool of one; fall back to the unrestricted pick
		return r.GetRandomByDifficulty(ctx, difficulty)
	}
	return q, err
}

// Create stores a question; options are kept as a JSON array.
func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO questions (text, options, correct_answer, difficulty, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		q.Text, optionsJSON, q.CorrectAnswer, q.Difficulty, q.Category,
	).Scan(&q.ID)
}

// CountByDifficulty returns the pool size for one tier.
func (r *QuestionRepository) CountByDifficulty(ctx context.Context, difficulty int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE difficulty = $1`, difficulty).Scan(&n)
	return n, err
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var (
		q           domain.Question
		optionsJSON []byte
	)
	if err := row.Scan(&q.ID, &q.Text, &optionsJSON, &q.CorrectAnswer, &q.Difficulty, &q.Category); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
		return nil, err
	}
	return &q, nil
}
