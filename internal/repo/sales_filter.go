package repo

import (
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

// SalesFilter narrows a ledger listing to a time window and a page of it.
// Nil fields do not constrain.
type SalesFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

// FilterSales returns the page of records inside the filter's time window
// along with the number of records in the window.
func FilterSales(records []models.SaleRecord, sf SalesFilter) ([]models.SaleRecord, int) {
	filtered := []models.SaleRecord{}
	for _, rec := range records {
		if sf.Since != nil && rec.DateTime.Before(*sf.Since) {
			continue
		}
		if sf.Until != nil && rec.DateTime.After(*sf.Until) {
			continue
		}
		filtered = append(filtered, rec)
	}

	// Offset past the end yields an empty page
	if sf.Offset != nil && *sf.Offset > len(filtered) {
		return []models.SaleRecord{}, len(filtered)
	}

	start := 0
	if sf.Offset != nil {
		start = clamp(*sf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if sf.Limit != nil && *sf.Limit > 0 {
		end = clamp(start+*sf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
