package middleware

import (
	"net"
	"net/http"

	rl "github.com/rogerio-castellano/shop-inventory/internal/http/rate_limiter"
	"github.com/rs/zerolog/log"
)

// RateLimit rejects requests from clients that exceed their token bucket.
func RateLimit(reg *rl.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !reg.GetVisitor(ip).Allow() {
				log.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("rate limit exceeded")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
