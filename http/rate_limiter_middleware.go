package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// RateLimitMiddleware rejects clients that have used up their bucket with
// 429 and a Retry-After header. Clients are keyed by remote IP, so it should
// run after chi's RealIP middleware.
func RateLimitMiddleware(limiter *RateLimiter, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				client = r.RemoteAddr
			}

			allowed, remaining, retryAfter := limiter.Allow(client)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				log.Warn().Str("client", client).Str("path", r.URL.Path).Msg("Rate limit exceeded")
				writeError(w, log, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
