// Package secretguard protects operational endpoints (scheduled cache
// refreshes, manual flushes) with a single shared secret instead of the
// full token pipeline. Deployments without the secret configured get a 503
// rather than an open endpoint.
package secretguard

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// Middleware admits requests whose Authorization header carries the exact
// configured secret as a bearer credential. An empty secret disables the
// guarded endpoints entirely with 503 Service Unavailable.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				writeError(w, http.StatusServiceUnavailable, "Endpoint not configured")
				return
			}

			header := r.Header.Get("Authorization")
			provided, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
