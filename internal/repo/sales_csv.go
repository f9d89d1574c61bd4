package repo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/shopspring/decimal"
)

var salesHeader = []string{"datetime", "item", "company", "model", "quantity", "price", "total"}

// Ledgers written without the total column are still read and appended to.
var salesHeaderNoTotal = salesHeader[:6]

// CSVSalesRepository keeps the sales ledger in a comma-separated file that is
// only ever appended to.
type CSVSalesRepository struct {
	path    string
	catalog CatalogRepository
	now     func() time.Time
	loc     *time.Location
}

// SalesOption configures a CSVSalesRepository.
type SalesOption func(*CSVSalesRepository)

// WithClock replaces time.Now as the source of sale timestamps and of "today".
func WithClock(now func() time.Time) SalesOption {
	return func(r *CSVSalesRepository) {
		r.now = now
	}
}

// WithLocation sets the time zone used for ledger timestamps. Defaults to time.Local.
func WithLocation(loc *time.Location) SalesOption {
	return func(r *CSVSalesRepository) {
		r.loc = loc
	}
}

// NewCSVSalesRepository creates a ledger stored at path. Sales deduct stock
// from catalog.
func NewCSVSalesRepository(path string, catalog CatalogRepository, opts ...SalesOption) *CSVSalesRepository {
	r := &CSVSalesRepository{
		path:    path,
		catalog: catalog,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the ledger file location.
func (r *CSVSalesRepository) Path() string {
	return r.path
}

// Location returns the time zone of ledger timestamps.
func (r *CSVSalesRepository) Location() *time.Location {
	return r.loc
}

// RecordSale deducts qty from the catalog row matching key and appends the
// sale to the ledger. The two files are written one after the other with no
// transaction: if the append fails the deduction stays in place.
func (r *CSVSalesRepository) RecordSale(key models.SKU, qty int, price decimal.Decimal) (models.SaleRecord, error) {
	if _, _, err := r.catalog.AdjustStock(key, qty, Decrease); err != nil {
		return models.SaleRecord{}, fmt.Errorf("deducting stock: %w", err)
	}

	at := r.now().In(r.loc).Truncate(time.Second)
	sale := models.NewSaleRecord(at, key, qty, price)
	if err := r.append(sale); err != nil {
		return models.SaleRecord{}, err
	}
	return sale, nil
}

// ReadAll returns every sale in ledger order. A missing or empty ledger
// yields no records.
func (r *CSVSalesRepository) ReadAll() ([]models.SaleRecord, error) {
	records, _, err := readTable(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading sales: %w", err)
	}

	sales := []models.SaleRecord{}
	if len(records) == 0 {
		return sales, nil
	}

	withTotal, err := r.layout(records[0])
	if err != nil {
		return nil, err
	}

	for i, rec := range records[1:] {
		sale, err := r.decodeSale(rec, withTotal)
		if err != nil {
			return nil, fmt.Errorf("%w: sales %s line %d: %w", ErrStorageCorrupt, r.path, i+2, err)
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// TodaysSales returns the records dated today in the ledger's time zone.
func (r *CSVSalesRepository) TodaysSales(records []models.SaleRecord) []models.SaleRecord {
	return SalesOn(records, r.now().In(r.loc))
}

// TodaysTotal sums the totals of today's records.
func (r *CSVSalesRepository) TodaysTotal(records []models.SaleRecord) decimal.Decimal {
	return SalesTotal(r.TodaysSales(records))
}

func (r *CSVSalesRepository) append(sale models.SaleRecord) error {
	header, err := readHeader(r.path)
	if err != nil {
		return fmt.Errorf("recording sale: %w", err)
	}

	if header == nil {
		if err := writeTable(r.path, salesHeader, [][]string{encodeSale(sale, true)}); err != nil {
			return fmt.Errorf("recording sale: %w", err)
		}
		return nil
	}

	withTotal, err := r.layout(header)
	if err != nil {
		return fmt.Errorf("recording sale: %w", err)
	}
	if err := appendRow(r.path, encodeSale(sale, withTotal)); err != nil {
		return fmt.Errorf("recording sale: %w", err)
	}
	return nil
}

// layout reports whether header carries the total column.
func (r *CSVSalesRepository) layout(header []string) (bool, error) {
	switch {
	case slices.Equal(header, salesHeader):
		return true, nil
	case slices.Equal(header, salesHeaderNoTotal):
		return false, nil
	}
	return false, fmt.Errorf("%w: sales %s has header %v", ErrStorageCorrupt, r.path, header)
}

func (r *CSVSalesRepository) decodeSale(rec []string, withTotal bool) (models.SaleRecord, error) {
	at, err := time.ParseInLocation(models.DateTimeLayout, strings.TrimSpace(rec[0]), r.loc)
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("datetime: %w", err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[4]))
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec[5]))
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("price: %w", err)
	}

	sale := models.NewSaleRecord(at, models.SKU{Item: rec[1], Company: rec[2], Model: rec[3]}, qty, price)
	if !withTotal {
		return sale, nil
	}

	total, err := decimal.NewFromString(strings.TrimSpace(rec[6]))
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("total: %w", err)
	}
	sale.Total = total
	return sale, nil
}

func encodeSale(sale models.SaleRecord, withTotal bool) []string {
	row := []string{
		sale.DateTime.Format(models.DateTimeLayout),
		sale.Item,
		sale.Company,
		sale.Model,
		strconv.Itoa(sale.Quantity),
		sale.Price.String(),
	}
	if withTotal {
		row = append(row, sale.Total.String())
	}
	return row
}
