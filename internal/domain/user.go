package domain

import "time"

type User struct {
	ID            int64     `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	WalletBalance int64     `db:"wallet_balance" json:"wallet_balance"`
	BankBalance   int64     `db:"bank_balance" json:"bank_balance"`
	XP            int64     `db:"xp" json:"xp"`
	Level         int       `db:"level" json:"level"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// TotalWealth is wallet plus bank, the leaderboard sort key.
func (u *User) TotalWealth() int64 {
	return u.WalletBalance + u.BankBalance
}
