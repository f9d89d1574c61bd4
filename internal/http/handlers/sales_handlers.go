package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	repo "github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// RecordSaleHandler deducts the sold quantity from stock and appends the
// sale to the ledger. The response carries the stock left afterwards.
func (s *Server) RecordSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateSale(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := req.SKU()
	price := req.Price
	if price == nil {
		items, err := s.catalog.Load()
		if err != nil {
			storageFailure(w, r, err, "could not load inventory")
			return
		}
		i := repo.FindItem(items, key)
		if i < 0 {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		price = &items[i].Price
	}

	sale, err := s.sales.RecordSale(key, req.Quantity, *price)
	if err != nil {
		storageFailure(w, r, err, "could not record sale")
		return
	}

	result := SaleResult{Sale: toSaleResponse(sale)}
	items, err := s.catalog.Load()
	if err != nil {
		storageFailure(w, r, err, "could not load inventory")
		return
	}
	if i := repo.FindItem(items, key); i >= 0 {
		stock := items[i].Stock
		result.RemainingStock = &stock
		result.LowStock = items[i].LowStock()
		alertLowStock(items[i])
	}
	respond(w, r, http.StatusCreated, result)
}

// GetSalesHandler lists ledger rows, optionally windowed by since/until
// (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS) and paginated by offset/limit.
func (s *Server) GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	loc := s.sales.Location()
	since, err := parseTimePtr(q.Get("since"), false, loc)
	if err != nil {
		http.Error(w, "invalid since", http.StatusBadRequest)
		return
	}
	until, err := parseTimePtr(q.Get("until"), true, loc)
	if err != nil {
		http.Error(w, "invalid until", http.StatusBadRequest)
		return
	}

	offset, err := parseIntPtr(q.Get("offset"))
	if err != nil {
		http.Error(w, "invalid offset", http.StatusBadRequest)
		return
	}
	limit, err := parseIntPtr(q.Get("limit"))
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}

	filter := repo.SalesFilter{
		Since:  since,
		Until:  until,
		Offset: offset,
		Limit:  limit,
	}
	if filter.Limit != nil && *filter.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.sales.ReadAll()
	if err != nil {
		storageFailure(w, r, err, "could not read sales")
		return
	}

	page, total := repo.FilterSales(records, filter)
	respond(w, r, http.StatusOK, SalesSearchResult{
		Data: toSaleResponses(page),
		Meta: Meta{TotalCount: total},
	})
}

// GetTodaySalesHandler returns today's sales and their total.
func (s *Server) GetTodaySalesHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.sales.ReadAll()
	if err != nil {
		storageFailure(w, r, err, "could not read sales")
		return
	}

	today := s.sales.TodaysSales(records)
	respond(w, r, http.StatusOK, TodaySalesResult{
		Count: len(today),
		Total: s.sales.TodaysTotal(records),
		Data:  toSaleResponses(today),
	})
}

func parseIntPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseTimePtr reads a ledger timestamp or a bare date in the ledger's
// location. A bare date used as an upper bound covers the whole day.
func parseTimePtr(s string, endOfDay bool, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(models.DateTimeLayout, s, loc); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return &t, nil
}
