package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/hongminglow/society-be/internal/http/respond"
	"github.com/hongminglow/society-be/internal/ratelimit"
)

// Throttle rejects requests from a client once limiter refuses its address.
// Limiter errors fail open so a Redis outage never blocks logins.
// X-Forwarded-For is only consulted when trustForwarded is set.
func Throttle(limiter ratelimit.Limiter, trustForwarded bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed, err := limiter.Allow(r.Context(), clientIP(r, trustForwarded))
		if err != nil {
			log.Printf("throttle: %v", err)
			allowed = true
		}
		if !allowed {
			respond.Error(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
			return
		}
		next(w, r)
	}
}

// clientIP uses the right-most X-Forwarded-For entry, which is the address the trusted
// proxy itself observed; earlier entries are client supplied.
func clientIP(r *http.Request, trustForwarded bool) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); trustForwarded && forwarded != "" {
		hops := strings.Split(forwarded, ",")
		if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
			return last
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
