package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the unverified peek at the bearer token. The console never
// validates signatures: claims are advisory, used only to treat an expired
// token as signed-out before the backend confirms with a 401.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// PeekClaims parses the token without verification. A malformed token
// returns nil rather than an error: the API client will learn the truth
// from the backend either way.
func PeekClaims(token string) *TokenClaims {
	if token == "" {
		return nil
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}

	claims := &TokenClaims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims
}

// Expired reports whether the token carries an exp claim in the past.
func (c *TokenClaims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.Before(now)
}
