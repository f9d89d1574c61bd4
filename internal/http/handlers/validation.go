package handlers

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateKey(k ItemKey) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(k.Item) == "" {
		errs = append(errs, ValidationError{Field: "item", Description: "Item is required"})
	}
	if strings.TrimSpace(k.Company) == "" {
		errs = append(errs, ValidationError{Field: "company", Description: "Company is required"})
	}
	return errs
}

func validatePrice(p decimal.Decimal) []ValidationError {
	if p.IsNegative() {
		return []ValidationError{{Field: "price", Description: "Price cannot be negative"}}
	}
	return nil
}

func validateItem(req ItemRequest) []ValidationError {
	errs := validateKey(req.ItemKey)
	if req.Stock < 0 {
		errs = append(errs, ValidationError{Field: "stock", Description: "Stock cannot be negative"})
	}
	errs = append(errs, validatePrice(req.Price)...)
	if req.ReorderLevel < 0 {
		errs = append(errs, ValidationError{Field: "reorder_level", Description: "Reorder level cannot be negative"})
	}
	return errs
}

func validatePriceUpdate(req PriceUpdateRequest) []ValidationError {
	return append(validateKey(req.ItemKey), validatePrice(req.Price)...)
}

func validateAdjustment(req StockAdjustmentRequest) []ValidationError {
	errs := validateKey(req.ItemKey)
	if req.Quantity <= 0 {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Quantity must be greater than zero"})
	}
	d := strings.ToLower(strings.TrimSpace(req.Direction))
	if d != "increase" && d != "decrease" {
		errs = append(errs, ValidationError{Field: "direction", Description: "Direction must be increase or decrease"})
	}
	return errs
}

func validateSale(req SaleRequest) []ValidationError {
	errs := validateKey(req.ItemKey)
	if req.Quantity <= 0 {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Quantity must be greater than zero"})
	}
	if req.Price != nil {
		errs = append(errs, validatePrice(*req.Price)...)
	}
	return errs
}
