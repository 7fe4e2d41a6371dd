package middleware

import (
	"net/http"
	"os"
)

// CORS handles cross-origin requests from the mobile/web client. The allowed
// origin defaults to wildcard and can be pinned with RELAY_CORS_ORIGIN.
func CORS(next http.Handler) http.Handler {
	origin := os.Getenv("RELAY_CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
