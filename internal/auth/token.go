// Package auth validates access tokens issued by the auth service
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenType = "access"

// TokenValidator validates HS256 access tokens carrying a user_id claim
type TokenValidator struct {
	secret []byte
}

// NewTokenValidator creates a new token validator
func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// GenerateAccessToken signs an access token for the user
//
// Tokens are normally issued by the auth service; this is used by tests and local tooling.
func (tv *TokenValidator) GenerateAccessToken(userID int, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(expiry).Unix(),
		"iat":     now.Unix(),
		"type":    accessTokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tv.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the userID
func (tv *TokenValidator) ValidateAccessToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tv.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != accessTokenType {
		return 0, fmt.Errorf("token is not an access token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, fmt.Errorf("user_id not found in token")
	}

	return int(userID), nil
}
