package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	repo "github.com/rogerio-castellano/shop-inventory/internal/repo"
	"github.com/rs/zerolog/log"
)

// GetInventoryHandler lists every catalog row.
func (s *Server) GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.catalog.Load()
	if err != nil {
		storageFailure(w, r, err, "could not load inventory")
		return
	}
	respond(w, r, http.StatusOK, toItemResponses(items))
}

// GetLowStockHandler lists the rows whose stock is below their reorder level.
func (s *Server) GetLowStockHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.catalog.Load()
	if err != nil {
		storageFailure(w, r, err, "could not load inventory")
		return
	}
	respond(w, r, http.StatusOK, toItemResponses(repo.LowStock(items)))
}

// AddOrUpdateItemHandler adds a catalog row or overwrites stock, price and
// reorder level of the row with the same key.
func (s *Server) AddOrUpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateItem(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.AddOrUpdate(req.SKU(), req.Stock, req.Price, req.ReorderLevel)
	if err != nil {
		storageFailure(w, r, err, "could not save item")
		return
	}
	alertLowStock(item)
	respond(w, r, http.StatusOK, toItemResponse(item))
}

// UpdatePriceHandler changes the unit price of an existing row.
func (s *Server) UpdatePriceHandler(w http.ResponseWriter, r *http.Request) {
	var req PriceUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validatePriceUpdate(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.UpdatePrice(req.SKU(), req.Price)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		storageFailure(w, r, err, "could not update price")
		return
	}
	respond(w, r, http.StatusOK, toItemResponse(item))
}

// AdjustStockHandler adds or removes units. Unknown keys are not an error.
func (s *Server) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	var req StockAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateAdjustment(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}
	direction, err := repo.ParseStockDirection(req.Direction)
	if err != nil {
		http.Error(w, "invalid direction", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, found, err := s.catalog.AdjustStock(req.SKU(), req.Quantity, direction)
	if err != nil {
		storageFailure(w, r, err, "could not adjust stock")
		return
	}

	result := StockAdjustmentResult{Found: found}
	if found {
		alertLowStock(item)
		resp := toItemResponse(item)
		result.Item = &resp
	}
	respond(w, r, http.StatusOK, result)
}

// DeleteItemHandler removes the row named by the item, company and model
// query parameters. Deleting a missing key succeeds.
func (s *Server) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := ItemKey{Item: q.Get("item"), Company: q.Get("company"), Model: q.Get("model")}

	if errs := validateKey(key); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.catalog.Delete(key.SKU())
	if err != nil {
		storageFailure(w, r, err, "could not delete item")
		return
	}
	log.Info().Str("item", key.Item).Str("company", key.Company).Str("model", key.Model).
		Int("removed", removed).Msg("item deleted")
	w.WriteHeader(http.StatusNoContent)
}

func alertLowStock(item models.InventoryItem) {
	if !item.LowStock() {
		return
	}
	log.Warn().
		Str("item", item.Item).
		Str("company", item.Company).
		Str("model", item.Model).
		Int("stock", item.Stock).
		Int("reorder_level", item.ReorderLevel).
		Msg("stock below reorder level")
}
