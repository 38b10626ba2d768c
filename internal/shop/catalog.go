package shop

import (
	"errors"

	"milyoner_webapp/internal/domain"
)

var ErrUnknownItem = errors.New("unknown shop item")

// Item is a purchasable catalog entry. PassiveIncome is the daily amount the
// asset yields once owned; vehicles yield nothing.
type Item struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Price         int64  `json:"price"`
	PassiveIncome int64  `json:"passive_income"`
	Description   string `json:"description"`
}

var catalog = []Item{
	{ID: "h1", Name: "1+1 Apartment", Type: domain.ItemTypeHousing, Price: 50_000, PassiveIncome: 100, Description: "A modest city apartment with steady rent"},
	{ID: "h2", Name: "Seaside Villa", Type: domain.ItemTypeHousing, Price: 250_000, PassiveIncome: 600, Description: "A luxury villa overlooking the coast"},
	{ID: "c1", Name: "Economy Car", Type: domain.ItemTypeVehicle, Price: 20_000, PassiveIncome: 0, Description: "Gets you from A to B"},
	{ID: "c2", Name: "Sports Car", Type: domain.ItemTypeVehicle, Price: 150_000, PassiveIncome: 0, Description: "Zero to a hundred before the next question"},
	{ID: "i1", Name: "Cafe", Type: domain.ItemTypeBusiness, Price: 100_000, PassiveIncome: 500, Description: "A cozy neighborhood cafe"},
	{ID: "i2", Name: "Restaurant", Type: domain.ItemTypeBusiness, Price: 500_000, PassiveIncome: 3_000, Description: "A fine-dining restaurant downtown"},
}

// Items returns the full catalog. The slice is a copy; callers may not mutate
// the catalog through it.
func Items() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks an item up by its catalog id.
func Find(id string) (Item, error) {
	for _, item := range catalog {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, ErrUnknownItem
}

// AsInventory converts a catalog item into the inventory row a purchase
// creates.
func (i Item) AsInventory() domain.InventoryItem {
	return domain.InventoryItem{
		ItemType:      i.Type,
		ItemID:        i.ID,
		Name:          i.Name,
		Price:         i.Price,
		PassiveIncome: i.PassiveIncome,
	}
}
