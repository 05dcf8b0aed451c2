package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Callers answer all of them with the same 401 and keep
// the distinction for logs and metrics.
var (
	ErrSigningKeyMissing     = errors.New("jwt signing key is not configured")
	ErrTokenMissing          = errors.New("token missing")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
)

// Claims defines the custom claims for the access token.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// Issue creates a signed token for userID valid for the configured TTL.
	Issue(userID int64) (token string, expiresAt time.Time, err error)

	// Verify validates signature and expiry and returns the embedded user id.
	Verify(token string) (int64, error)
}
