package repo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/shopspring/decimal"
)

var inventoryHeader = []string{
	"item", "company", "model",
	models.FieldStock, models.FieldPrice, models.FieldReorderLevel,
}

// CSVCatalogRepository keeps the inventory table in a comma-separated file.
type CSVCatalogRepository struct {
	path string
}

// NewCSVCatalogRepository creates a catalog stored at path. The file is
// created on first Load if it does not exist.
func NewCSVCatalogRepository(path string) *CSVCatalogRepository {
	return &CSVCatalogRepository{path: path}
}

// Path returns the inventory file location.
func (r *CSVCatalogRepository) Path() string {
	return r.path
}

// Load reads the whole inventory table.
func (r *CSVCatalogRepository) Load() ([]models.InventoryItem, error) {
	records, exists, err := readTable(r.path)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	if !exists {
		if err := r.Save(nil); err != nil {
			return nil, fmt.Errorf("initializing inventory: %w", err)
		}
		return []models.InventoryItem{}, nil
	}

	items := []models.InventoryItem{}
	if len(records) == 0 {
		return items, nil
	}
	if !slices.Equal(records[0], inventoryHeader) {
		return nil, fmt.Errorf("%w: inventory %s has header %v", ErrStorageCorrupt, r.path, records[0])
	}

	for _, rec := range records[1:] {
		items = append(items, decodeItem(rec))
	}
	return items, nil
}

// Save overwrites the inventory table with items.
func (r *CSVCatalogRepository) Save(items []models.InventoryItem) error {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = encodeItem(it)
	}
	if err := writeTable(r.path, inventoryHeader, rows); err != nil {
		return fmt.Errorf("saving inventory: %w", err)
	}
	return nil
}

// AddOrUpdate overwrites stock, price and reorder level of the row matching
// key, or appends a new row when none matches.
func (r *CSVCatalogRepository) AddOrUpdate(key models.SKU, stock int, price decimal.Decimal, reorderLevel int) (models.InventoryItem, error) {
	items, err := r.Load()
	if err != nil {
		return models.InventoryItem{}, err
	}

	i := FindItem(items, key)
	if i < 0 {
		items = append(items, models.NewInventoryItem(key, stock, price, reorderLevel))
		i = len(items) - 1
	} else {
		items[i].SetStock(stock)
		items[i].SetPrice(price)
		items[i].SetReorderLevel(reorderLevel)
	}

	if err := r.Save(items); err != nil {
		return models.InventoryItem{}, err
	}
	return items[i], nil
}

// UpdatePrice sets the price of the row matching key.
func (r *CSVCatalogRepository) UpdatePrice(key models.SKU, price decimal.Decimal) (models.InventoryItem, error) {
	items, err := r.Load()
	if err != nil {
		return models.InventoryItem{}, err
	}

	i := FindItem(items, key)
	if i < 0 {
		return models.InventoryItem{}, ErrItemNotFound
	}
	items[i].SetPrice(price)

	if err := r.Save(items); err != nil {
		return models.InventoryItem{}, err
	}
	return items[i], nil
}

// AdjustStock adds qty to, or removes it from, the stock of the row matching
// key. Stock never drops below zero. The table is saved even when no row
// matches; the boolean reports whether one did.
func (r *CSVCatalogRepository) AdjustStock(key models.SKU, qty int, direction StockDirection) (models.InventoryItem, bool, error) {
	if direction != Increase && direction != Decrease {
		return models.InventoryItem{}, false, fmt.Errorf("adjusting stock: unknown direction %s", direction)
	}

	items, err := r.Load()
	if err != nil {
		return models.InventoryItem{}, false, err
	}

	i := FindItem(items, key)
	if i >= 0 {
		stock := items[i].Stock
		if direction == Increase {
			stock += qty
		} else {
			stock = max(stock-qty, 0)
		}
		items[i].SetStock(stock)
	}

	if err := r.Save(items); err != nil {
		return models.InventoryItem{}, false, err
	}
	if i < 0 {
		return models.InventoryItem{}, false, nil
	}
	return items[i], true, nil
}

// Delete removes every row matching key and returns how many were removed.
func (r *CSVCatalogRepository) Delete(key models.SKU) (int, error) {
	items, err := r.Load()
	if err != nil {
		return 0, err
	}

	before := len(items)
	items = slices.DeleteFunc(items, func(it models.InventoryItem) bool {
		return it.Matches(key)
	})

	if err := r.Save(items); err != nil {
		return 0, err
	}
	return before - len(items), nil
}

func decodeItem(rec []string) models.InventoryItem {
	item := models.InventoryItem{
		SKU: models.SKU{Item: rec[0], Company: rec[1], Model: rec[2]},
	}

	if n, ok := parseCount(rec[3]); ok {
		item.Stock = n
	} else {
		keepUnparsed(&item, models.FieldStock, rec[3])
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(rec[4])); err == nil {
		item.Price = d
	} else {
		keepUnparsed(&item, models.FieldPrice, rec[4])
	}
	if n, ok := parseCount(rec[5]); ok {
		item.ReorderLevel = n
	} else {
		keepUnparsed(&item, models.FieldReorderLevel, rec[5])
	}
	return item
}

func encodeItem(it models.InventoryItem) []string {
	return []string{
		it.Item,
		it.Company,
		it.Model,
		columnText(it, models.FieldStock, strconv.Itoa(it.Stock)),
		columnText(it, models.FieldPrice, it.Price.String()),
		columnText(it, models.FieldReorderLevel, strconv.Itoa(it.ReorderLevel)),
	}
}

// parseCount reads an integer column. Integral decimals such as "5.0" are
// accepted since older files stored counts that way.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

func keepUnparsed(it *models.InventoryItem, field, text string) {
	if it.Unparsed == nil {
		it.Unparsed = map[string]string{}
	}
	it.Unparsed[field] = text
}

func columnText(it models.InventoryItem, field, formatted string) string {
	if text, ok := it.Unparsed[field]; ok {
		return text
	}
	return formatted
}
