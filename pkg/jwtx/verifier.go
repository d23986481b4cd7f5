package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrInvalid    = errors.New("jwtx: invalid token")
)

// Verifier validates tokens for one trust domain and recovers their claims.
// A Verifier holding the access secret rejects refresh tokens and vice
// versa, even though the claim shape is identical.
type Verifier struct {
	Secret []byte

	// TimeFunc overrides the clock used for exp validation. Nil means
	// time.Now. The expiry boundary is exclusive: a token is already
	// invalid at exactly its expiry instant.
	TimeFunc func() time.Time
}

// NewVerifier returns a Verifier for the given secret.
func NewVerifier(secret []byte) Verifier {
	return Verifier{Secret: secret}
}

// Verify checks the token's signature and expiry and returns its claims.
// Failures map to ErrMalformed, ErrInvalidSig, ErrExpired or ErrInvalid.
func (v Verifier) Verify(token string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.TimeFunc != nil {
		opts = append(opts, jwt.WithTimeFunc(v.TimeFunc))
	}

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, mapError(err)
	}

	return claims, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrInvalid
	}
}
