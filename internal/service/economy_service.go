package service

import (
	"context"
	"errors"

	"milyoner_webapp/internal/domain"
	"milyoner_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUserNotFound      = errors.New("user not found")
)

// XP needed per level step: level N is left once xp reaches N*1000.
const xpPerLevel = 1000

// EconomyService owns every wallet/bank/xp mutation. Multi-statement updates
// run inside a transaction with the user row locked.
type EconomyService struct {
	db            *pgxpool.Pool
	userRepo      *repository.UserRepository
	inventoryRepo *repository.InventoryRepository
}

func NewEconomyService(db *pgxpool.Pool) *EconomyService {
	return &EconomyService{
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		inventoryRepo: repository.NewInventoryRepository(db),
	}
}

// RecordPayout credits quiz earnings and xp, then applies a single level-up
// step if the new xp crosses the current threshold. Level-ups deliberately do
// not cascade within one call.
func (s *EconomyService) RecordPayout(ctx context.Context, userID int64, earnings, xpGained int64) error {
	if earnings < 0 || xpGained < 0 {
		return ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		xp    int64
		level int64
	)
	err = tx.QueryRow(ctx,
		`UPDATE users
		 SET wallet_balance = wallet_balance + $1, xp = xp + $2
		 WHERE id = $3
		 RETURNING xp, level`,
		earnings, xpGained, userID,
	).Scan(&xp, &level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if xp >= level*xpPerLevel {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET level = level + 1 WHERE id = $1`, userID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CollectPassiveIncome transfers the full daily rate of all owned assets into
// the wallet and returns the collected amount. There is no accrual window;
// repeated calls collect the same amount again.
func (s *EconomyService) CollectPassiveIncome(ctx context.Context, userID int64) (int64, error) {
	total, err := s.inventoryRepo.TotalPassiveIncome(ctx, userID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	_, err = s.db.Exec(ctx,
		`UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2`,
		total, userID)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Purchase deducts the item price and creates the inventory row atomically.
// A wallet short of the price aborts with no mutation at all.
func (s *EconomyService) Purchase(ctx context.Context, userID int64, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.Price <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var wallet int64
	err = tx.QueryRow(ctx,
		`SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&wallet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if wallet < item.Price {
		return nil, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET wallet_balance = wallet_balance - $1 WHERE id = $2`,
		item.Price, userID); err != nil {
		return nil, err
	}

	item.UserID = userID
	if err := s.inventoryRepo.CreateTx(ctx, tx, &item); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

// Deposit moves money from wallet to bank.
func (s *EconomyService) Deposit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.userRepo.Deposit(ctx, userID, amount); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return ErrInsufficientFunds
		}
		return err
	}
	return nil
}

// WithdrawBank moves money from bank to wallet.
func (s *EconomyService) WithdrawBank(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.userRepo.WithdrawBank(ctx, userID, amount); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return ErrInsufficientFunds
		}
		return err
	}
	return nil
}
