package repository

import (
	"context"

	"milyoner_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetByUser returns all assets owned by the user, newest first.
func (r *InventoryRepository) GetByUser(ctx context.Context, userID int64) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, item_type, item_id, name, price, passive_income, acquired_at
		 FROM inventory
		 WHERE user_id = $1
		 ORDER BY acquired_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ItemType, &it.ItemID, &it.Name,
			&it.Price, &it.PassiveIncome, &it.AcquiredAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// TotalPassiveIncome sums the per-day income of the user's assets.
func (r *InventoryRepository) TotalPassiveIncome(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(passive_income), 0) FROM inventory WHERE user_id = $1`,
		userID).Scan(&total)
	return total, err
}

// CreateTx inserts an item inside the caller's transaction; purchases deduct
// the wallet and create the item as one atomic unit.
func (r *InventoryRepository) CreateTx(ctx context.Context, tx pgx.Tx, it *domain.InventoryItem) error {
	return tx.QueryRow(ctx,
		`INSERT INTO inventory (user_id, item_type, item_id, name, price, passive_income)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, acquired_at`,
		it.UserID, it.ItemType, it.ItemID, it.Name, it.Price, it.PassiveIncome,
	).Scan(&it.ID, &it.AcquiredAt)
}
