package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "userID"

// AccessTokenValidator is the interface that wraps access token validation
type AccessTokenValidator interface {
	ValidateAccessToken(tokenString string) (int, error)
}

// Middleware requires a valid access token from the Authorization header or the access_token cookie
func Middleware(validator AccessTokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				if cookie, err := r.Cookie("access_token"); err == nil {
					token = cookie.Value
				}
			}

			if token == "" {
				unauthorized(w, `{"error":"authentication required"}`)
				return
			}

			userID, err := validator.ValidateAccessToken(token)
			if err != nil {
				unauthorized(w, `{"error":"invalid or expired token"}`)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user ID
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(body))
}
