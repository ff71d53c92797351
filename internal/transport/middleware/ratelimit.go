package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"dictproxy/internal/ratelimit"
)

// RateLimit rejects clients that exhausted any rule of l with 429. A
// failing limiter backend lets the request through.
func RateLimit(l ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientIP(r)
			dec, err := l.Allow(r.Context(), client)
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Str("client", client).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !dec.Allowed {
				retry := int(math.Ceil(dec.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				zerolog.Ctx(r.Context()).Info().
					Str("client", client).
					Str("rule", dec.Rule.String()).
					Msg("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded: " + dec.Rule.String(),
				})
				return
			}
			if dec.Remaining >= 0 {
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP is the host part of the connection's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
