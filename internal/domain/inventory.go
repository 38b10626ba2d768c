package domain

import "time"

// Inventory item categories.
const (
	ItemTypeHousing  = "housing"
	ItemTypeVehicle  = "vehicle"
	ItemTypeBusiness = "business"
)

// InventoryItem is an asset owned by a user. Created on purchase and never
// mutated afterwards.
type InventoryItem struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	ItemType      string    `db:"item_type" json:"item_type"`
	ItemID        string    `db:"item_id" json:"item_id"`
	Name          string    `db:"name" json:"name"`
	Price         int64     `db:"price" json:"price"`
	PassiveIncome int64     `db:"passive_income" json:"passive_income"`
	AcquiredAt    time.Time `db:"acquired_at" json:"acquired_at"`
}
