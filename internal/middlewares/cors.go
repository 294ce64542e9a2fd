package middlewares

import (
	"net/http"
	"slices"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Request-ID"
)

// CORSMiddleware answers preflight requests and sets CORS headers for allowed origins
//
// "*" in allowedOrigins allows every origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := slices.Contains(allowedOrigins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := allowedOrigin(r.Header.Get("Origin"), allowedOrigins, allowAll); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allowedOrigin returns the value of Access-Control-Allow-Origin, or "" when the origin is not allowed
func allowedOrigin(origin string, allowedOrigins []string, allowAll bool) string {
	if origin == "" {
		return ""
	}
	if allowAll {
		return "*"
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return origin
		}
	}
	return ""
}
