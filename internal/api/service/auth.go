package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/oidc"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/pkg/cryptox"
	"github.com/feedme/feedme/pkg/idx"
	"github.com/feedme/feedme/pkg/slogx"
)

// Identical message for unknown email and wrong password so a caller
// cannot probe which addresses are registered.
const msgInvalidCredentials = "Invalid email or password"

// All refresh failures collapse to one message regardless of whether the
// token was malformed, expired, mis-signed or orphaned.
const msgInvalidRefresh = "Invalid refresh token"

const minPasswordLength = 6

// AuthService owns the register / login / refresh / federated-login flows.
// Each call is one self-contained transaction; no state is held between
// calls beyond what the store persists.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a password-based account and signs it in. Duplicate
// emails fail with Conflict whether caught by the pre-check or by the
// store's unique index during a concurrent race.
func (s *AuthService) Register(ctx context.Context, email, password, name string, role domain.Role) (domain.User, domain.TokenPair, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, domain.TokenPair{}, apperr.BadRequest("A valid email is required")
	}
	if len(password) < minPasswordLength {
		return domain.User{}, domain.TokenPair{}, apperr.BadRequest("Password must be at least 6 characters")
	}
	if name == "" {
		return domain.User{}, domain.TokenPair{}, apperr.BadRequest("Name is required")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return domain.User{}, domain.TokenPair{}, apperr.BadRequest("Invalid role")
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, domain.TokenPair{}, apperr.Conflict("User with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.TokenPair{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	now := s.now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		// Lost the race against a concurrent register for the same email;
		// the unique index is the serialization point.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.TokenPair{}, apperr.Conflict("User with this email already exists")
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.Tokens.IssuePair(u, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("user registered",
		slog.String("user_id", u.ID),
		slog.String("role", string(u.Role)),
	)
	return u, pair, nil
}

// Login verifies a password credential and issues a token pair. Unknown
// email, wrong password and federated-only accounts all produce the same
// Unauthorized message.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	email = normalizeEmail(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if !u.HasPassword() || !cryptox.VerifyPassword(password, u.PasswordHash) {
		return domain.User{}, domain.TokenPair{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	pair, err := s.Tokens.IssuePair(u, s.now())
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	return u, pair, nil
}

// RefreshToken rotates the token pair. The old refresh token is not
// revoked and stays independently valid until its own expiry; there is no
// revocation store.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, apperr.Unauthorized(msgInvalidRefresh)
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, apperr.Unauthorized(msgInvalidRefresh)
		}
		return domain.TokenPair{}, err
	}

	pair, err := s.Tokens.IssuePair(u, s.now())
	if err != nil {
		return domain.TokenPair{}, err
	}

	// Fingerprint lets rotations be correlated in logs without ever
	// recording the token itself.
	slogx.FromContext(ctx).Debug("token pair rotated",
		slog.String("user_id", u.ID),
		slog.String("refresh_fp", cryptox.FingerprintToken(refreshToken)),
	)
	return pair, nil
}

// FederatedLogin signs in a user asserted by an external identity
// provider. An existing account with the same email gets the provider
// linkage attached, keeping its password hash and role; otherwise a
// passwordless account is created just in time.
func (s *AuthService) FederatedLogin(ctx context.Context, provider string, info oidc.UserInfo) (domain.User, domain.TokenPair, error) {
	email := normalizeEmail(info.Email)
	if email == "" {
		return domain.User{}, domain.TokenPair{}, apperr.BadRequest("Provider did not supply an email")
	}

	l := slogx.FromContext(ctx)
	now := s.now()

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !u.HasProvider() {
			// Merge by email only; the provider's email assertion is the
			// trust boundary here.
			if err := s.Store.Users().LinkProvider(ctx, u.ID, provider, info.Subject); err != nil {
				return domain.User{}, domain.TokenPair{}, err
			}
			u.Provider = provider
			u.ProviderID = info.Subject
			l.Info("linked federated provider to existing account",
				slog.String("user_id", u.ID),
				slog.String("provider", provider),
			)
		}

	case errors.Is(err, store.ErrNotFound):
		u = domain.User{
			ID:         idx.New().String(),
			Email:      email,
			Name:       info.Name,
			Picture:    info.Picture,
			Role:       domain.RoleUser,
			Provider:   provider,
			ProviderID: info.Subject,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.Store.Users().CreateUser(ctx, u); err != nil {
			return domain.User{}, domain.TokenPair{}, err
		}
		l.Info("provisioned federated user",
			slog.String("user_id", u.ID),
			slog.String("provider", provider),
		)

	default:
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.Tokens.IssuePair(u, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	return u, pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
