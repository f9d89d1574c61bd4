package handlers

import (
	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/shopspring/decimal"
)

type ItemKey struct {
	Item    string `json:"item"`
	Company string `json:"company"`
	Model   string `json:"model"`
}

func (k ItemKey) SKU() models.SKU {
	return models.SKU{Item: k.Item, Company: k.Company, Model: k.Model}
}

type ItemRequest struct {
	ItemKey
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level"`
}

type ItemResponse struct {
	ItemKey
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level"`
	LowStock     bool            `json:"low_stock"`
}

type PriceUpdateRequest struct {
	ItemKey
	Price decimal.Decimal `json:"price"`
}

type StockAdjustmentRequest struct {
	ItemKey
	Direction string `json:"direction"` // increase | decrease
	Quantity  int    `json:"quantity"`
}

type StockAdjustmentResult struct {
	Found bool          `json:"found"`
	Item  *ItemResponse `json:"item,omitempty"`
}

type SaleRequest struct {
	ItemKey
	Quantity int `json:"quantity"`
	// Price defaults to the current catalog price when omitted.
	Price *decimal.Decimal `json:"price,omitempty"`
}

type SaleResponse struct {
	DateTime string          `json:"datetime"`
	Item     string          `json:"item"`
	Company  string          `json:"company"`
	Model    string          `json:"model"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

type SaleResult struct {
	Sale           SaleResponse `json:"sale"`
	RemainingStock *int         `json:"remaining_stock,omitempty"`
	LowStock       bool         `json:"low_stock"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type SalesSearchResult struct {
	Data []SaleResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type TodaySalesResult struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	Data  []SaleResponse  `json:"data"`
}

type ImportItemsResult struct {
	ImportedItemsCount int               `json:"imported"`
	Errors             []ValidationError `json:"errors"`
}

func toItemResponse(it models.InventoryItem) ItemResponse {
	return ItemResponse{
		ItemKey:      ItemKey{Item: it.Item, Company: it.Company, Model: it.Model},
		Stock:        it.Stock,
		Price:        it.Price,
		ReorderLevel: it.ReorderLevel,
		LowStock:     it.LowStock(),
	}
}

func toItemResponses(items []models.InventoryItem) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = toItemResponse(it)
	}
	return resp
}

func toSaleResponse(s models.SaleRecord) SaleResponse {
	return SaleResponse{
		DateTime: s.DateTime.Format(models.DateTimeLayout),
		Item:     s.Item,
		Company:  s.Company,
		Model:    s.Model,
		Quantity: s.Quantity,
		Price:    s.Price,
		Total:    s.Total,
	}
}

func toSaleResponses(records []models.SaleRecord) []SaleResponse {
	resp := make([]SaleResponse, len(records))
	for i, s := range records {
		resp[i] = toSaleResponse(s)
	}
	return resp
}
