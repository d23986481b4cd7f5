package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are deliberately much shorter lived than
// refresh tokens; both can be overridden per-service via configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 24 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the signed claim set carried by both access and refresh tokens.
// The wire shape {sub, email, role, iat, exp} is a compatibility contract;
// keep changes additive.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`

	// Role is the user's role ("admin" or "user").
	Role string `json:"role,omitempty"`
}

// NewClaims builds a minimally-correct claim set for a user identity.
// Timestamps are truncated to seconds so that signing is deterministic for a
// fixed (claims, now) pair.
func NewClaims(subject, email, role string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  role,
	}
}

// ExpiresIn returns the remaining lifetime of the claims relative to now,
// in whole seconds. Callers use this rather than a static TTL constant so
// the reported value survives small clock drift between issue and use.
func (c Claims) ExpiresIn(now time.Time) int64 {
	if c.ExpiresAt == nil {
		return 0
	}
	return int64(c.ExpiresAt.Time.Sub(now).Seconds())
}
