package domain

import "time"

// GameHistory is an append-only record of one finished quiz session.
type GameHistory struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Score    int       `db:"score" json:"score"`
	Earnings int64     `db:"earnings" json:"earnings"`
	Outcome  string    `db:"outcome" json:"outcome"`
	PlayedAt time.Time `db:"played_at" json:"played_at"`
}
