package service

import (
	"time"

	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/pkg/jwtx"
)

// TokenService issues and verifies the access/refresh token pair. The two
// trust domains hold independent secrets: an access token can never be
// replayed as a refresh token or vice versa.
type TokenService struct {
	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	AccessVerifier  jwtx.Verifier
	RefreshVerifier jwtx.Verifier
}

// NewTokenService wires signers and verifiers from the two secrets. Zero
// ttls fall back to the jwtx defaults (24h access, 168h refresh).
func NewTokenService(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	return &TokenService{
		AccessSigner:    jwtx.NewSigner(accessSecret, accessTTL),
		RefreshSigner:   jwtx.NewSigner(refreshSecret, refreshTTL),
		AccessVerifier:  jwtx.NewVerifier(accessSecret),
		RefreshVerifier: jwtx.NewVerifier(refreshSecret),
	}
}

// IssuePair signs an access and a refresh token for the user. ExpiresIn is
// computed from the access token's embedded expiry rather than the
// configured TTL, so callers see the real remaining lifetime.
func (s *TokenService) IssuePair(u domain.User, now time.Time) (domain.TokenPair, error) {
	access, claims, err := s.AccessSigner.Sign(u.ID, u.Email, string(u.Role), now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, _, err := s.RefreshSigner.Sign(u.ID, u.Email, string(u.Role), now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    claims.ExpiresIn(now),
	}, nil
}

// VerifyAccess validates a token against the access secret.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	return s.AccessVerifier.Verify(token)
}

// VerifyRefresh validates a token against the refresh secret.
func (s *TokenService) VerifyRefresh(token string) (jwtx.Claims, error) {
	return s.RefreshVerifier.Verify(token)
}
