package middleware

import (
	"net"
	"net/http"

	"github.com/AlchemyApps/mindScript-sub004/internal/ratelimit"
)

// RateLimit creates a middleware that applies the fixed-window limiter,
// keyed by client IP. Request headers are not trusted for keying.
func RateLimit(limiter *ratelimit.Limiter) Middleware {
	if limiter == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from the remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
