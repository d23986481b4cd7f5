package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/internal/api/store/drivers/sqlite"
	"github.com/feedme/feedme/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestTokens() *service.TokenService {
	return service.NewTokenService(
		[]byte("test-access-secret"),
		[]byte("test-refresh-secret"),
		0, 0,
	)
}

// probeHandler echoes the identity the middleware attached, if any.
func probeHandler(t *testing.T, got *domain.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ident, ok := IdentityFromContext(r.Context()); ok {
			*got = ident
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func registerTestUser(t *testing.T, st store.Store, tokens *service.TokenService, email string, role domain.Role) (domain.User, domain.TokenPair) {
	t.Helper()

	auth := &service.AuthService{Store: st, Tokens: tokens}
	u, pair, err := auth.Register(context.Background(), email, "secret1", "Test User", role)
	require.NoError(t, err)
	return u, pair
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var env httpx.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.Equal(t, "error", env.Status)
	return env.Message
}

func TestAuthnAttachesIdentity(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	tokens := newTestTokens()
	u, pair := registerTestUser(t, st, tokens, "ann@example.com", "")

	var got domain.Identity
	h := Authn(tokens, st.Users())(probeHandler(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, domain.RoleUser, got.Role)
}

func TestAuthnFailureMessages(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	tokens := newTestTokens()
	u, pair := registerTestUser(t, st, tokens, "ann@example.com", "")

	// Issued two days in the past, beyond the default access ttl.
	expired, err := tokens.IssuePair(u, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	// Same claim shape but signed with the refresh secret.
	wrongDomain := pair.RefreshToken

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Unauthorized"},
		{"malformed token", "Bearer not-a-jwt", "Malformed token"},
		{"expired token", "Bearer " + expired.AccessToken, "Token expired"},
		{"wrong secret domain", "Bearer " + wrongDomain, "Invalid token signature"},
	}

	var got domain.Identity
	h := Authn(tokens, st.Users())(probeHandler(t, &got))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, tc.message, errorMessage(t, rec))
		})
	}
}

func TestAuthnRejectsDeletedUser(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	tokens := newTestTokens()
	u, pair := registerTestUser(t, st, tokens, "ann@example.com", "")

	require.NoError(t, st.Users().DeleteUser(context.Background(), u.ID))

	var got domain.Identity
	h := Authn(tokens, st.Users())(probeHandler(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthnNeverRejects(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	tokens := newTestTokens()
	u, pair := registerTestUser(t, st, tokens, "ann@example.com", "")

	var got domain.Identity
	h := OptionalAuthn(tokens, st.Users())(probeHandler(t, &got))

	// Anonymous request passes through without an identity.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/recipes", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, got.ID)

	// A garbage token is ignored rather than rejected.
	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, got.ID)

	// A valid token attaches the identity.
	req = httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, u.ID, got.ID)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	tokens := newTestTokens()
	_, userPair := registerTestUser(t, st, tokens, "user@example.com", "")
	_, adminPair := registerTestUser(t, st, tokens, "admin@example.com", domain.RoleAdmin)

	var got domain.Identity
	h := httpx.Chain(probeHandler(t, &got),
		Authn(tokens, st.Users()),
		RequireRole(domain.RoleAdmin),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+userPair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Insufficient permissions", errorMessage(t, rec))

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminPair.AccessToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
