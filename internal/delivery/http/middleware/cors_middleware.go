package middleware

import (
	"net/http"
	"strings"

	"jbfsport-backend/config"
)

// NewCORSMiddleware allows the comma-separated ALLOWED_ORIGIN list ("*" allows all).
func NewCORSMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	allowed := strings.Split(cfg.AllowedOrigin, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			credentials := false
			for _, o := range allowed {
				if o == "*" {
					// browsers refuse credentials with a wildcard origin
					w.Header().Set("Access-Control-Allow-Origin", "*")
					break
				}
				if origin != "" && o == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
					credentials = true
					break
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if credentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
