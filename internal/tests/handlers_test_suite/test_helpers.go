package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	api "github.com/rogerio-castellano/shop-inventory/internal/http"
	handler "github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

type testEnv struct {
	router  http.Handler
	catalog *repo.CSVCatalogRepository
	sales   *repo.CSVSalesRepository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	return newTestEnvWith(t)
}

func newTestEnvWith(t *testing.T, opts ...repo.SalesOption) testEnv {
	t.Helper()
	dir := t.TempDir()

	catalog := repo.NewCSVCatalogRepository(filepath.Join(dir, "inventory.csv"))
	sales := repo.NewCSVSalesRepository(filepath.Join(dir, "sales.csv"), catalog, opts...)
	metrics := repo.NewLedgerMetricsRepository(catalog, sales)

	return testEnv{
		router:  api.NewRouter(handler.NewServer(catalog, sales, metrics), nil),
		catalog: catalog,
		sales:   sales,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func key(item, company, model string) handler.ItemKey {
	return handler.ItemKey{Item: item, Company: company, Model: model}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func addItem(t *testing.T, r http.Handler, req handler.ItemRequest) handler.ItemResponse {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/inventory", req)
	require.Equal(t, http.StatusOK, w.Code, "add item: %s", w.Body.String())
	return decode[handler.ItemResponse](t, w)
}

func listInventory(t *testing.T, r http.Handler) []handler.ItemResponse {
	t.Helper()
	w := doJSON(r, http.MethodGet, "/inventory", nil)
	require.Equal(t, http.StatusOK, w.Code)
	return decode[[]handler.ItemResponse](t, w)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
