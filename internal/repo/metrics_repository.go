package repo

import (
	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/shopspring/decimal"
)

// TopSeller is the SKU with the most units sold today.
type TopSeller struct {
	models.SKU
	Quantity int `json:"quantity"`
}

// Metrics summarizes the catalog and today's sales for the dashboard.
type Metrics struct {
	TotalItems     int             `json:"total_items"`
	UnitsInStock   int             `json:"units_in_stock"`
	LowStockCount  int             `json:"low_stock_count"`
	SalesToday     int             `json:"sales_today"`
	RevenueToday   decimal.Decimal `json:"revenue_today"`
	TopSellerToday *TopSeller      `json:"top_seller_today,omitempty"`
}

// MetricsRepository computes dashboard figures.
type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
