package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"milyoner_webapp/internal/domain"
	"milyoner_webapp/internal/repository"
	"milyoner_webapp/internal/service"
	"milyoner_webapp/internal/shop"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func createUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	repo := repository.NewUserRepository(db)
	suffix := time.Now().UnixNano()
	u := &domain.User{
		Username:     fmt.Sprintf("it_user_%d", suffix),
		Email:        fmt.Sprintf("it_%d@example.com", suffix),
		PasswordHash: "x",
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestUserStartsWithInitialWallet(t *testing.T) {
	db := connect(t)
	u := createUser(t, db)
	if u.WalletBalance != 1000 {
		t.Fatalf("wallet = %d; want 1000", u.WalletBalance)
	}
	if u.Level != 1 || u.XP != 0 {
		t.Fatalf("level=%d xp=%d; want 1, 0", u.Level, u.XP)
	}
}

func TestBankRoundTrip(t *testing.T) {
	db := connect(t)
	u := createUser(t, db)
	economy := service.NewEconomyService(db)
	ctx := context.Background()

	if err := economy.Deposit(ctx, u.ID, 600); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := economy.Deposit(ctx, u.ID, 600); !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if err := economy.WithdrawBank(ctx, u.ID, 200); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	fresh, err := repository.NewUserRepository(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if fresh.WalletBalance != 600 || fresh.BankBalance != 400 {
		t.Fatalf("wallet=%d bank=%d; want 600, 400", fresh.WalletBalance, fresh.BankBalance)
	}
}

func TestPurchaseAndPassiveIncome(t *testing.T) {
	db := connect(t)
	u := createUser(t, db)
	economy := service.NewEconomyService(db)
	ctx := context.Background()

	// fund the wallet enough for the cheapest house
	if err := economy.RecordPayout(ctx, u.ID, 60_000, 0); err != nil {
		t.Fatalf("fund wallet: %v", err)
	}

	item, _ := shop.Find("h1")
	owned, err := economy.Purchase(ctx, u.ID, item.AsInventory())
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if owned.ID == 0 {
		t.Fatalf("inventory row has no id")
	}

	// second villa is out of reach
	villa, _ := shop.Find("h2")
	if _, err := economy.Purchase(ctx, u.ID, villa.AsInventory()); !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	collected, err := economy.CollectPassiveIncome(ctx, u.ID)
	if err != nil {
		t.Fatalf("collect income: %v", err)
	}
	if collected != item.PassiveIncome {
		t.Fatalf("collected %d; want %d", collected, item.PassiveIncome)
	}
}

func TestRecordPayoutLevelsUp(t *testing.T) {
	db := connect(t)
	u := createUser(t, db)
	economy := service.NewEconomyService(db)
	ctx := context.Background()

	// 1000 xp crosses the level 1 threshold exactly once
	if err := economy.RecordPayout(ctx, u.ID, 0, 1000); err != nil {
		t.Fatalf("record payout: %v", err)
	}

	fresh, err := repository.NewUserRepository(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if fresh.Level != 2 {
		t.Fatalf("level = %d; want 2", fresh.Level)
	}
}

func TestAccrueDailyInterest(t *testing.T) {
	db := connect(t)
	u := createUser(t, db)
	economy := service.NewEconomyService(db)
	ctx := context.Background()

	if err := economy.RecordPayout(ctx, u.ID, 1_000_000, 0); err != nil {
		t.Fatalf("fund wallet: %v", err)
	}
	if err := economy.Deposit(ctx, u.ID, 1_000_000); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	repo := repository.NewUserRepository(db)
	if _, err := repo.AccrueDailyInterest(ctx, 5); err != nil {
		t.Fatalf("accrue interest: %v", err)
	}

	fresh, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	// 1_000_000 * 5 / 36500 = 136 (floored)
	if fresh.BankBalance != 1_000_136 {
		t.Fatalf("bank = %d; want 1000136", fresh.BankBalance)
	}
}

func TestQuestionPoolRoundTrip(t *testing.T) {
	db := connect(t)
	repo := repository.NewQuestionRepository(db)
	ctx := context.Background()

	q := &domain.Question{
		Text:          fmt.Sprintf("integration question %d", time.Now().UnixNano()),
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
		Difficulty:    3,
		Category:      "test",
	}
	if err := repo.Create(ctx, q); err != nil {
		t.Fatalf("create question: %v", err)
	}

	got, err := repo.GetRandomByDifficulty(ctx, 3)
	if err != nil {
		t.Fatalf("get random: %v", err)
	}
	if got.Difficulty != 3 || len(got.Options) != 4 {
		t.Fatalf("unexpected question: %+v", got)
	}
}
