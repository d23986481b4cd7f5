package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints HS256-signed tokens for one trust domain. Access and refresh
// tokens use separate Signers with independent secrets so possession of one
// token never implies derivability of the other.
type Signer struct {
	Secret []byte
	TTL    time.Duration
}

// NewSigner returns a Signer for the given secret and ttl, falling back to
// DefaultAccessTokenTTL when ttl is zero.
func NewSigner(secret []byte, ttl time.Duration) Signer {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return Signer{Secret: secret, TTL: ttl}
}

// Sign serializes the identity claims plus iat/exp into a signed token.
func (s Signer) Sign(subject, email, role string, now time.Time) (string, Claims, error) {
	if len(s.Secret) == 0 {
		return "", Claims{}, errors.New("jwtx: signer has no secret")
	}

	claims := NewClaims(subject, email, role, s.TTL, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}
