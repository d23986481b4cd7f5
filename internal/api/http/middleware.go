package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/pkg/httpx"
	"github.com/feedme/feedme/pkg/jwtx"
)

type identityCtxKey struct{}

// IdentityFromContext returns the verified caller identity attached by
// Authn or OptionalAuthn, or false when the request is anonymous.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	ident, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return ident, ok
}

func withIdentity(ctx context.Context, ident domain.Identity) context.Context {
	ctx = context.WithValue(ctx, identityCtxKey{}, ident)
	return httpx.WithUserID(ctx, ident.ID)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

// resolveIdentity verifies the bearer token and loads the user it names.
// The user lookup catches tokens for deleted accounts.
func resolveIdentity(r *http.Request, tokens *service.TokenService, users store.Users) (domain.Identity, error) {
	token := bearerToken(r)
	if token == "" {
		return domain.Identity{}, errors.New("missing bearer token")
	}

	claims, err := tokens.VerifyAccess(token)
	if err != nil {
		return domain.Identity{}, err
	}

	u, err := users.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		return domain.Identity{}, errors.New("unknown subject")
	}

	return domain.Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}, nil
}

// Authn requires a valid access token and attaches the caller identity to
// the request context. The verifier's failure reason is surfaced when it
// is one of the known token errors.
func Authn(tokens *service.TokenService, users store.Users) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := resolveIdentity(r, tokens, users)
			if err != nil {
				httpx.WriteErrorMessage(w, http.StatusUnauthorized, authFailureMessage(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
		})
	}
}

// OptionalAuthn attaches the identity when a valid token is present but
// never rejects the request. Used for public-plus-own listings.
func OptionalAuthn(tokens *service.TokenService, users store.Users) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ident, err := resolveIdentity(r, tokens, users); err == nil {
				r = r.WithContext(withIdentity(r.Context(), ident))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects callers whose role is not in the allow list. Must
// run inside Authn.
func RequireRole(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r.Context())
			if !ok {
				httpx.WriteErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range roles {
				if ident.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.WriteErrorMessage(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return "Token expired"
	case errors.Is(err, jwtx.ErrMalformed):
		return "Malformed token"
	case errors.Is(err, jwtx.ErrInvalidSig):
		return "Invalid token signature"
	default:
		return "Unauthorized"
	}
}
