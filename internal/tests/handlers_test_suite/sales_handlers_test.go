package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSaleHandler(t *testing.T) {
	env := newTestEnv(t)
	addItem(t, env.router, handler.ItemRequest{ItemKey: key("Pen", "Acme", "X1"), Stock: 10, Price: dec("2.50"), ReorderLevel: 8})

	price := dec("2.50")
	w := doJSON(env.router, http.MethodPost, "/sales",
		handler.SaleRequest{ItemKey: key("pen", "acme", "X1"), Quantity: 3, Price: &price})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[handler.SaleResult](t, w)
	assert.Equal(t, 3, resp.Sale.Quantity)
	assert.True(t, resp.Sale.Total.Equal(dec("7.50")))
	require.NotNil(t, resp.RemainingStock)
	assert.Equal(t, 7, *resp.RemainingStock)
	assert.True(t, resp.LowStock)

	items := listInventory(t, env.router)
	assert.Equal(t, 7, items[0].Stock)

	records, err := env.sales.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Total.Equal(dec("7.5")))
}

func TestRecordSaleHandler_DefaultsToCatalogPrice(t *testing.T) {
	env := newTestEnv(t)
	addItem(t, env.router, handler.ItemRequest{ItemKey: key("Ink", "Acme", "B"), Stock: 5, Price: dec("1.25")})

	w := doJSON(env.router, http.MethodPost, "/sales",
		handler.SaleRequest{ItemKey: key("Ink", "Acme", "B"), Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[handler.SaleResult](t, w)
	assert.True(t, resp.Sale.Price.Equal(dec("1.25")))
	assert.True(t, resp.Sale.Total.Equal(dec("2.5")))
}

func TestRecordSaleHandler_UnknownItem(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(env.router, http.MethodPost, "/sales",
		handler.SaleRequest{ItemKey: key("Ink", "Acme", "B"), Quantity: 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An explicit price records the sale even without a catalog row
	price := dec("1")
	w = doJSON(env.router, http.MethodPost, "/sales",
		handler.SaleRequest{ItemKey: key("Ink", "Acme", "B"), Quantity: 2, Price: &price})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[handler.SaleResult](t, w)
	assert.Nil(t, resp.RemainingStock)
}

func TestRecordSaleHandler_Invalid(t *testing.T) {
	env := newTestEnv(t)

	price := dec("-1")
	w := doJSON(env.router, http.MethodPost, "/sales",
		handler.SaleRequest{ItemKey: key("", "Acme", "B"), Quantity: 0, Price: &price})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[[]handler.ValidationError](t, w)
	var fields []string
	for _, e := range resp {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"item", "quantity", "price"}, fields)
}

func TestGetTodaySalesHandler(t *testing.T) {
	env := newTestEnv(t)
	addItem(t, env.router, handler.ItemRequest{ItemKey: key("Pen", "Acme", "X1"), Stock: 10, Price: dec("2.50")})

	old := time.Now().AddDate(0, 0, -1).Format(models.DateTimeLayout)
	writeFile(t, env.sales.Path(), "datetime,item,company,model,quantity,price,total\n"+
		old+",Pen,Acme,X1,4,2.5,10\n")

	for range 2 {
		w := doJSON(env.router, http.MethodPost, "/sales", handler.SaleRequest{ItemKey: key("Pen", "Acme", "X1"), Quantity: 1})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(env.router, http.MethodGet, "/sales/today", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[handler.TodaySalesResult](t, w)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Data, 2)
	assert.True(t, resp.Total.Equal(dec("5")), "total was %s", resp.Total)
}

func TestGetSalesHandler(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.sales.Path(), "datetime,item,company,model,quantity,price,total\n"+
		"2025-03-10 09:00:00,Pen,Acme,X1,1,2.5,2.5\n"+
		"2025-03-11 09:00:00,Pen,Acme,X1,2,2.5,5\n"+
		"2025-03-12 09:00:00,Ink,Acme,B,3,1,3\n")

	t.Run("all", func(t *testing.T) {
		w := doJSON(env.router, http.MethodGet, "/sales", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[handler.SalesSearchResult](t, w)
		assert.Len(t, resp.Data, 3)
		assert.Equal(t, 3, resp.Meta.TotalCount)
	})

	t.Run("date window", func(t *testing.T) {
		w := doJSON(env.router, http.MethodGet, "/sales?since=2025-03-11&until=2025-03-11", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[handler.SalesSearchResult](t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, 2, resp.Data[0].Quantity)
		assert.Equal(t, "2025-03-11 09:00:00", resp.Data[0].DateTime)
	})

	t.Run("paging", func(t *testing.T) {
		w := doJSON(env.router, http.MethodGet, "/sales?offset=1&limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[handler.SalesSearchResult](t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Pen", resp.Data[0].Item)
		assert.Equal(t, 3, resp.Meta.TotalCount)
	})

	t.Run("bad query", func(t *testing.T) {
		for _, q := range []string{"limit=0", "offset=-1", "limit=abc", "offset=x", "since=yesterday"} {
			w := doJSON(env.router, http.MethodGet, "/sales?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
	})
}

func TestGetSalesHandler_LedgerLocation(t *testing.T) {
	// Far enough east that the window would shift under any ordinary local zone
	zone := time.FixedZone("UTC+14", 14*60*60)
	env := newTestEnvWith(t, repo.WithLocation(zone))
	writeFile(t, env.sales.Path(), "datetime,item,company,model,quantity,price,total\n"+
		"2025-03-10 23:30:00,Pen,Acme,X1,1,2.5,2.5\n"+
		"2025-03-11 00:30:00,Pen,Acme,X1,2,2.5,5\n")

	w := doJSON(env.router, http.MethodGet, "/sales?since=2025-03-11&until=2025-03-11", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[handler.SalesSearchResult](t, w)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "2025-03-11 00:30:00", resp.Data[0].DateTime)
}

func TestSalesAndInventoryReadsConcurrently(t *testing.T) {
	env := newTestEnv(t)
	const items = 50
	for i := range items {
		addItem(t, env.router, handler.ItemRequest{ItemKey: key(fmt.Sprintf("item-%d", i), "Acme", ""), Stock: 100, Price: dec("1")})
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[int]int{}
	)
	record := func(code int) {
		mu.Lock()
		codes[code]++
		mu.Unlock()
	}

	for i := range 40 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			w := doJSON(env.router, http.MethodPost, "/sales", handler.SaleRequest{ItemKey: key(fmt.Sprintf("item-%d", i%items), "Acme", ""), Quantity: 1})
			record(w.Code)
		}()
		go func() {
			defer wg.Done()
			w := doJSON(env.router, http.MethodGet, "/inventory", nil)
			var listed []handler.ItemResponse
			if w.Code == http.StatusOK && assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed)) {
				assert.Len(t, listed, items)
			}
			record(w.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, map[int]int{http.StatusCreated: 40, http.StatusOK: 40}, codes)
	assert.Len(t, listInventory(t, env.router), items)

	records, err := env.sales.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 40)
}

func TestGetSalesHandler_CorruptLedger(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.sales.Path(), "datetime,item,company,model,quantity,price,total\nyesterday,Pen,Acme,X1,1,2.5,2.5\n")

	w := doJSON(env.router, http.MethodGet, "/sales", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
