package repository

import (
	"context"

	"milyoner_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GameHistoryRepository struct {
	db *pgxpool.Pool
}

func NewGameHistoryRepository(db *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{db: db}
}

// Create appends a finished session record.
func (r *GameHistoryRepository) Create(ctx context.Context, gh *domain.GameHistory) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO game_history (user_id, score, earnings, outcome)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, played_at`,
		gh.UserID, gh.Score, gh.Earnings, gh.Outcome,
	).Scan(&gh.ID, &gh.PlayedAt)
}

// GetByUser returns the user's most recent sessions.
func (r *GameHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]domain.GameHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, score, earnings, outcome, played_at
		 FROM game_history
		 WHERE user_id = $1
		 ORDER BY played_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.GameHistory
	for rows.Next() {
		var gh domain.GameHistory
		if err := rows.Scan(&gh.ID, &gh.UserID, &gh.Score, &gh.Earnings, &gh.Outcome, &gh.PlayedAt); err != nil {
			return nil, err
		}
		res = append(res, gh)
	}
	return res, rows.Err()
}
