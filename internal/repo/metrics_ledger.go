package repo

// LedgerMetricsRepository derives dashboard metrics from the catalog and
// the sales ledger on every call.
type LedgerMetricsRepository struct {
	catalog CatalogRepository
	sales   SalesRepository
}

func NewLedgerMetricsRepository(catalog CatalogRepository, sales SalesRepository) *LedgerMetricsRepository {
	return &LedgerMetricsRepository{catalog: catalog, sales: sales}
}

// GetDashboardMetrics implements MetricsRepository.
func (l *LedgerMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	items, err := l.catalog.Load()
	if err != nil {
		return m, err
	}
	m.TotalItems = len(items)
	for _, it := range items {
		m.UnitsInStock += it.Stock
		if it.LowStock() {
			m.LowStockCount++
		}
	}

	records, err := l.sales.ReadAll()
	if err != nil {
		return m, err
	}
	today := l.sales.TodaysSales(records)
	m.SalesToday = len(today)
	m.RevenueToday = SalesTotal(today)

	// Quantities per key, in order of first sale so ties go to the earlier one
	var sold []TopSeller
	for _, rec := range today {
		found := false
		for i := range sold {
			if sold[i].Matches(rec.SKU) {
				sold[i].Quantity += rec.Quantity
				found = true
				break
			}
		}
		if !found {
			sold = append(sold, TopSeller{SKU: rec.SKU, Quantity: rec.Quantity})
		}
	}
	for i := range sold {
		if m.TopSellerToday == nil || sold[i].Quantity > m.TopSellerToday.Quantity {
			m.TopSellerToday = &sold[i]
		}
	}

	return m, nil
}
