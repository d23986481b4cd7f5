package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("test-access-secret")
	refreshSecret = []byte("test-refresh-secret")
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	now := time.Now()
	signer := NewSigner(accessSecret, time.Hour)

	token, claims, err := signer.Sign("user-1", "a@x.com", "user", now)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "user-1", claims.Subject)

	verifier := NewVerifier(accessSecret)
	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, "user", got.Role)
	require.Equal(t, claims.ExpiresAt.Unix(), got.ExpiresAt.Unix())
}

func TestSignDeterministic(t *testing.T) {
	t.Parallel()

	now := time.Now()
	signer := NewSigner(accessSecret, time.Hour)

	t1, _, err := signer.Sign("user-1", "a@x.com", "user", now)
	require.NoError(t, err)
	t2, _, err := signer.Sign("user-1", "a@x.com", "user", now)
	require.NoError(t, err)

	require.Equal(t, t1, t2, "identical claims and timestamp sign identically")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer := NewSigner(refreshSecret, time.Hour)
	token, _, err := signer.Sign("user-1", "a@x.com", "user", time.Now())
	require.NoError(t, err)

	// Access-domain verifier must reject refresh-domain tokens even though
	// the claim shape is identical.
	verifier := NewVerifier(accessSecret)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Truncate(time.Second)
	ttl := time.Minute
	signer := NewSigner(accessSecret, ttl)

	token, claims, err := signer.Sign("user-1", "a@x.com", "user", issuedAt)
	require.NoError(t, err)
	exp := claims.ExpiresAt.Time

	at := func(now time.Time) error {
		v := Verifier{Secret: accessSecret, TimeFunc: func() time.Time { return now }}
		_, err := v.Verify(token)
		return err
	}

	require.NoError(t, at(exp.Add(-time.Second)), "valid just before expiry")
	require.ErrorIs(t, at(exp), ErrExpired, "invalid at exactly the expiry instant")
	require.ErrorIs(t, at(exp.Add(time.Second)), ErrExpired, "invalid after expiry")
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(accessSecret)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, ErrMalformed, "token %q", token)
	}
}

func TestExpiresIn(t *testing.T) {
	t.Parallel()

	now := time.Now()
	claims := NewClaims("user-1", "a@x.com", "user", time.Hour, now)

	require.InDelta(t, 3600, claims.ExpiresIn(now), 1)
	require.InDelta(t, 1800, claims.ExpiresIn(now.Add(30*time.Minute)), 1)
}
