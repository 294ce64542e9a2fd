// Package middlewares provides HTTP middlewares shared by all routes
package middlewares

import "net/http"

// writeError writes a {"error": message} body without going through a handler
func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
