package repo

import (
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/shopspring/decimal"
)

// SalesRepository defines the append-only sales ledger.
type SalesRepository interface {
	RecordSale(key models.SKU, qty int, price decimal.Decimal) (models.SaleRecord, error)
	ReadAll() ([]models.SaleRecord, error)
	TodaysSales(records []models.SaleRecord) []models.SaleRecord
	TodaysTotal(records []models.SaleRecord) decimal.Decimal
	// Location is the time zone ledger timestamps are written and read in.
	Location() *time.Location
}

// SalesOn returns the records dated on the calendar day of day, in day's location.
func SalesOn(records []models.SaleRecord, day time.Time) []models.SaleRecord {
	y, m, d := day.Date()
	out := []models.SaleRecord{}
	for _, rec := range records {
		ry, rm, rd := rec.DateTime.In(day.Location()).Date()
		if ry == y && rm == m && rd == d {
			out = append(out, rec)
		}
	}
	return out
}

// SalesTotal sums the totals of records.
func SalesTotal(records []models.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Total)
	}
	return total
}
