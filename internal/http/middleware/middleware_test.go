package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	rl "github.com/rogerio-castellano/shop-inventory/internal/http/rate_limiter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

var teapot = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestRateLimit(t *testing.T) {
	h := RateLimit(rl.New(0.001, 2))(teapot)

	codes := []int{}
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusTeapot, http.StatusTeapot, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	req.RemoteAddr = "192.0.2.2:4000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = orig })

	req := httptest.NewRequest(http.MethodPost, "/sales", nil)
	w := httptest.NewRecorder()
	RequestLogger(teapot).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), `"method":"POST"`)
	assert.Contains(t, buf.String(), `"path":"/sales"`)
	assert.Contains(t, buf.String(), `"status":418`)
}
