package handlers

import (
	"sync"

	repo "github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// Server holds the stores the dashboard handlers operate on. mu serializes
// handlers that write the catalog or ledger against each other and against
// readers.
type Server struct {
	mu sync.RWMutex

	catalog repo.CatalogRepository
	sales   repo.SalesRepository
	metrics repo.MetricsRepository
}

// NewServer creates a Server over the given stores.
func NewServer(catalog repo.CatalogRepository, sales repo.SalesRepository, metrics repo.MetricsRepository) *Server {
	return &Server{
		catalog: catalog,
		sales:   sales,
		metrics: metrics,
	}
}
