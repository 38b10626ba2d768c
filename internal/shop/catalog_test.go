package shop

import (
	"errors"
	"testing"

	"milyoner_webapp/internal/domain"
)

func TestCatalogIsWellFormed(t *testing.T) {
	items := Items()
	if len(items) == 0 {
		t.Fatal("empty catalog")
	}
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate catalog id %q", item.ID)
		}
		seen[item.ID] = true
		if item.Price <= 0 {
			t.Fatalf("item %q has non-positive price %d", item.ID, item.Price)
		}
		if item.PassiveIncome < 0 {
			t.Fatalf("item %q has negative passive income", item.ID)
		}
		if item.Type == domain.ItemTypeVehicle && item.PassiveIncome != 0 {
			t.Fatalf("vehicle %q yields passive income", item.ID)
		}
	}
}

func TestFind(t *testing.T) {
	item, err := Find("h1")
	if err != nil {
		t.Fatalf("Find(h1): %v", err)
	}
	if item.Name != "1+1 Apartment" || item.Price != 50_000 {
		t.Fatalf("unexpected item: %+v", item)
	}

	if _, err := Find("nope"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestAsInventory(t *testing.T) {
	item, _ := Find("i2")
	inv := item.AsInventory()
	if inv.ItemID != "i2" || inv.PassiveIncome != 3_000 || inv.ItemType != domain.ItemTypeBusiness {
		t.Fatalf("unexpected inventory row: %+v", inv)
	}
}
