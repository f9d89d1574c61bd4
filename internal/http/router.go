package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	mw "github.com/rogerio-castellano/shop-inventory/internal/http/middleware"
	rl "github.com/rogerio-castellano/shop-inventory/internal/http/rate_limiter"
)

// NewRouter wires the dashboard routes. A nil limiter disables rate limiting.
func NewRouter(s *handlers.Server, limiter *rl.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)

	r.Get("/healthz", handlers.HealthHandler)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(mw.RateLimit(limiter))
		}

		r.Get("/inventory", s.GetInventoryHandler)
		r.Post("/inventory", s.AddOrUpdateItemHandler)
		r.Delete("/inventory", s.DeleteItemHandler)
		r.Get("/inventory/low-stock", s.GetLowStockHandler)
		r.Put("/inventory/price", s.UpdatePriceHandler)
		r.Post("/inventory/stock", s.AdjustStockHandler)
		r.Post("/inventory/import", s.ImportItemsHandler)

		r.Post("/sales", s.RecordSaleHandler)
		r.Get("/sales", s.GetSalesHandler)
		r.Get("/sales/today", s.GetTodaySalesHandler)

		r.Get("/metrics/dashboard", s.GetDashboardMetricsHandler)
	})

	return r
}
