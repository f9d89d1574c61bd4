package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CSV column names of the numeric inventory fields.
const (
	FieldStock        = "stock"
	FieldPrice        = "price"
	FieldReorderLevel = "reorder_level"
)

// SKU identifies a catalog row by item, company and model.
type SKU struct {
	Item    string `json:"item"`
	Company string `json:"company"`
	Model   string `json:"model"`
}

// Matches reports whether both keys name the same row, ignoring case.
func (k SKU) Matches(other SKU) bool {
	return strings.EqualFold(k.Item, other.Item) &&
		strings.EqualFold(k.Company, other.Company) &&
		strings.EqualFold(k.Model, other.Model)
}

// InventoryItem represents one stock-keeping unit of the shop catalog.
type InventoryItem struct {
	SKU
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level"`

	// Unparsed keeps the stored text of numeric columns that could not be
	// read as numbers. The matching typed field is zero while an entry exists.
	Unparsed map[string]string `json:"-"`
}

// NewInventoryItem creates a catalog row.
func NewInventoryItem(key SKU, stock int, price decimal.Decimal, reorderLevel int) InventoryItem {
	return InventoryItem{
		SKU:          key,
		Stock:        stock,
		Price:        price,
		ReorderLevel: reorderLevel,
	}
}

func (i *InventoryItem) SetStock(stock int) {
	i.Stock = stock
	delete(i.Unparsed, FieldStock)
}

func (i *InventoryItem) SetPrice(price decimal.Decimal) {
	i.Price = price
	delete(i.Unparsed, FieldPrice)
}

func (i *InventoryItem) SetReorderLevel(level int) {
	i.ReorderLevel = level
	delete(i.Unparsed, FieldReorderLevel)
}

// LowStock reports whether stock has fallen below the reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Stock < i.ReorderLevel
}
