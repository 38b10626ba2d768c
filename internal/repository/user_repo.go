package repository

import (
	"context"
	"errors"

	"milyoner_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateIdentity = errors.New("username or email already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Starting wallet for new accounts.
const initialWallet = 1000

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, wallet_balance, bank_balance, xp, level, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.WalletBalance,
		&u.BankBalance,
		&u.XP,
		&u.Level,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user with the starting balance. A unique violation on
// username or email is reported as ErrDuplicateIdentity.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, wallet_balance)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, wallet_balance, bank_balance, xp, level, created_at`,
		u.Username,
		u.Email,
		u.PasswordHash,
		int64(initialWallet),
	).Scan(&u.ID, &u.WalletBalance, &u.BankBalance, &u.XP, &u.Level, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateIdentity
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// WealthEntry is one leaderboard row ordered by total wealth.
type WealthEntry struct {
	Username    string `json:"username"`
	TotalWealth int64  `json:"total_wealth"`
	Level       int    `json:"level"`
}

// GetTopByWealth returns users ordered by wallet+bank descending.
func (r *UserRepository) GetTopByWealth(ctx context.Context, limit int) ([]WealthEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT username, wallet_balance + bank_balance AS total_wealth, level
		 FROM users
		 ORDER BY total_wealth DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []WealthEntry
	for rows.Next() {
		var e WealthEntry
		if err := rows.Scan(&e.Username, &e.TotalWealth, &e.Level); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// LevelEntry is one leaderboard row ordered by level, then xp.
type LevelEntry struct {
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int64  `json:"xp"`
}

// GetTopByLevel returns users ordered by level desc, xp desc.
func (r *UserRepository) GetTopByLevel(ctx context.Context, limit int) ([]LevelEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT username, level, xp
		 FROM users
		 ORDER BY level DESC, xp DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LevelEntry
	for rows.Next() {
		var e LevelEntry
		if err := rows.Scan(&e.Username, &e.Level, &e.XP); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// Deposit moves amount from wallet to bank in a single guarded statement, so
// the two balances can never drift apart.
func (r *UserRepository) Deposit(ctx context.Context, userID int64, amount int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET wallet_balance = wallet_balance - $1, bank_balance = bank_balance + $1
		 WHERE id = $2 AND wallet_balance >= $1`,
		amount, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// WithdrawBank moves amount from bank to wallet; mirror of Deposit.
func (r *UserRepository) WithdrawBank(ctx context.Context, userID int64, amount int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET wallet_balance = wallet_balance + $1, bank_balance = bank_balance - $1
		 WHERE id = $2 AND bank_balance >= $1`,
		amount, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// AccrueDailyInterest credits every positive bank balance with one day of
// the yearly rate given in percent. Integer division floors the credit.
func (r *UserRepository) AccrueDailyInterest(ctx context.Context, yearlyPercent int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET bank_balance = bank_balance + bank_balance * $1 / 36500
		 WHERE bank_balance * $1 / 36500 > 0`,
		yearlyPercent)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
