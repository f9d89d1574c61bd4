package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateTimeLayout is the timestamp format of the sales ledger.
const DateTimeLayout = "2006-01-02 15:04:05"

// SaleRecord is one completed sale. Catalog fields are copied at sale time.
type SaleRecord struct {
	DateTime time.Time `json:"datetime"`
	SKU
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// NewSaleRecord stamps a sale and computes its total.
func NewSaleRecord(at time.Time, key SKU, quantity int, price decimal.Decimal) SaleRecord {
	return SaleRecord{
		DateTime: at,
		SKU:      key,
		Quantity: quantity,
		Price:    price,
		Total:    price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
