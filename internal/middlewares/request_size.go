package middlewares

import "net/http"

// DefaultMaxRequestSize bounds JSON bodies and uploaded files
const DefaultMaxRequestSize = 10 << 20 // 10MB

// RequestSizeLimitMiddleware rejects bodies larger than maxRequestSize bytes
func RequestSizeLimitMiddleware(maxRequestSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				writeError(w, http.StatusRequestEntityTooLarge, `{"error":"request body too large"}`)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}
