package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	repo "github.com/rogerio-castellano/shop-inventory/internal/repo"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var importColumns = []string{"item", "company", "model", "stock", "price", "reorder_level"}

type csvRow struct {
	Line int
	Req  ItemRequest
	Err  error
}

func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []csvRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{Line: line}
		row.Req, row.Err = decodeRow(record, index)
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(record []string, index map[string]int) (ItemRequest, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	req := ItemRequest{ItemKey: ItemKey{Item: field("item"), Company: field("company"), Model: field("model")}}

	var err error
	if req.Stock, err = strconv.Atoi(field("stock")); err != nil {
		return req, errors.New("invalid stock")
	}
	if req.Price, err = decimal.NewFromString(field("price")); err != nil {
		return req, errors.New("invalid price")
	}
	if req.ReorderLevel, err = strconv.Atoi(field("reorder_level")); err != nil {
		return req, errors.New("invalid reorder_level")
	}
	return req, nil
}

// ImportItemsHandler adds catalog rows from an uploaded CSV file with the
// inventory columns. In mode=skip (default) rows whose key already exists
// are reported and left alone; mode=update overwrites them.
func (s *Server) ImportItemsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Keys already in the catalog plus those imported so far
	seen, err := s.catalog.Load()
	if err != nil {
		storageFailure(w, r, err, "could not load inventory")
		return
	}

	imported := 0
	errorsList := []ValidationError{}
	for _, row := range rows {
		if row.Err != nil {
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: %v", row.Line, row.Err)})
			continue
		}
		if errs := validateItem(row.Req); len(errs) > 0 {
			for _, e := range errs {
				errorsList = append(errorsList, ValidationError{Field: e.Field, Description: fmt.Sprintf("row %d: %s", row.Line, e.Description)})
			}
			continue
		}

		key := row.Req.SKU()
		if mode == "skip" && repo.FindItem(seen, key) >= 0 {
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: item '%s' already exists", row.Line, key.Item)})
			continue
		}

		item, err := s.catalog.AddOrUpdate(key, row.Req.Stock, row.Req.Price, row.Req.ReorderLevel)
		if err != nil {
			storageFailure(w, r, err, fmt.Sprintf("could not import row %d", row.Line))
			return
		}
		seen = append(seen, item)
		imported++
	}

	log.Info().Str("mode", mode).Int("imported", imported).Int("rejected", len(errorsList)).Msg("inventory import")
	respond(w, r, http.StatusOK, ImportItemsResult{
		ImportedItemsCount: imported,
		Errors:             errorsList,
	})
}
