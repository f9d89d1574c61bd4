package repo

import (
	"fmt"
	"strings"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/shopspring/decimal"
)

// StockDirection selects whether AdjustStock adds or removes units.
type StockDirection int

const (
	Increase StockDirection = iota
	Decrease
)

func (d StockDirection) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	}
	return fmt.Sprintf("StockDirection(%d)", int(d))
}

// ParseStockDirection accepts "increase"/"add" and "decrease"/"subtract".
func ParseStockDirection(s string) (StockDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "increase", "add":
		return Increase, nil
	case "decrease", "subtract":
		return Decrease, nil
	}
	return 0, fmt.Errorf("unknown stock direction %q", s)
}

// CatalogRepository defines the operations on the inventory table.
// Every mutation loads the whole table, edits it and saves it back.
type CatalogRepository interface {
	Load() ([]models.InventoryItem, error)
	Save(items []models.InventoryItem) error
	AddOrUpdate(key models.SKU, stock int, price decimal.Decimal, reorderLevel int) (models.InventoryItem, error)
	UpdatePrice(key models.SKU, price decimal.Decimal) (models.InventoryItem, error)
	AdjustStock(key models.SKU, qty int, direction StockDirection) (models.InventoryItem, bool, error)
	Delete(key models.SKU) (int, error)
}

// LowStock returns the rows whose stock is below their reorder level.
func LowStock(items []models.InventoryItem) []models.InventoryItem {
	low := []models.InventoryItem{}
	for _, it := range items {
		if it.LowStock() {
			low = append(low, it)
		}
	}
	return low
}

// FindItem returns the index of the first row matching key, or -1.
func FindItem(items []models.InventoryItem, key models.SKU) int {
	for i, it := range items {
		if it.Matches(key) {
			return i
		}
	}
	return -1
}
