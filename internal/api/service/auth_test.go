package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/oidc"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "ann@example.com", "secret1", "Ann", "")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Positive(t, pair.ExpiresIn)
	require.Equal(t, domain.RoleUser, u.Role)

	// Login with the same credentials must name the same subject.
	_, loginPair, err := svc.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)

	regClaims, err := svc.Tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	loginClaims, err := svc.Tokens.VerifyAccess(loginPair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, regClaims.Subject, loginClaims.Subject)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "dup@example.com", "secret1", "First", "")
	require.NoError(t, err)

	// Conflict even with a different password.
	_, _, err = svc.Register(ctx, "dup@example.com", "other-password", "Second", "")
	apiErr := apperr.From(err)
	require.NotNil(t, apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)

	// Email matching is case-insensitive.
	_, _, err = svc.Register(ctx, "DUP@example.com", "secret1", "Third", "")
	apiErr = apperr.From(err)
	require.NotNil(t, apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"bad email", "not-an-email", "secret1", "Ann"},
		{"short password", "ok@example.com", "abc", "Ann"},
		{"missing name", "ok@example.com", "secret1", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.email, tc.password, tc.userName, "")
			apiErr := apperr.From(err)
			require.NotNil(t, apiErr)
			require.Equal(t, http.StatusBadRequest, apiErr.Status)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "ann@example.com", "secret1", "Ann", "")
	require.NoError(t, err)

	_, _, wrongPass := svc.Login(ctx, "ann@example.com", "wrong")
	_, _, noUser := svc.Login(ctx, "ghost@example.com", "whatever")

	require.Error(t, wrongPass)
	require.Error(t, noUser)
	require.Equal(t, wrongPass.Error(), noUser.Error())

	apiErr := apperr.From(wrongPass)
	require.NotNil(t, apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestLoginFederatedOnlyAccount(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.FederatedLogin(ctx, "google", oidc.UserInfo{
		Subject: "google-123",
		Email:   "fed@example.com",
		Name:    "Fed User",
	})
	require.NoError(t, err)

	// No password hash: password login must fail with the same message
	// as a wrong password.
	_, _, err = svc.Login(ctx, "fed@example.com", "anything")
	apiErr := apperr.From(err)
	require.NotNil(t, apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestRefreshTokenRotation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, "ann@example.com", "secret1", "Ann", "")
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEmpty(t, rotated.RefreshToken)

	// Both tokens still verify in their own domains and name the same user.
	oldClaims, err := svc.Tokens.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	newClaims, err := svc.Tokens.VerifyRefresh(rotated.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, oldClaims.Subject, newClaims.Subject)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, "ann@example.com", "secret1", "Ann", "")
	require.NoError(t, err)

	// An access token has the same claim shape but the wrong secret domain.
	_, err = svc.RefreshToken(ctx, pair.AccessToken)
	apiErr := apperr.From(err)
	require.NotNil(t, apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid refresh token", apiErr.Message)
}

func TestRefreshFailuresCollapseToOneMessage(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.RefreshToken(ctx, token)
		apiErr := apperr.From(err)
		require.NotNil(t, apiErr)
		require.Equal(t, "Invalid refresh token", apiErr.Message)
	}
}

func TestRefreshFailsForDeletedUser(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "ann@example.com", "secret1", "Ann", "")
	require.NoError(t, err)

	require.NoError(t, svc.Store.Users().DeleteUser(ctx, u.ID))

	_, err = svc.RefreshToken(ctx, pair.RefreshToken)
	apiErr := apperr.From(err)
	require.NotNil(t, apiErr)
	require.Equal(t, "Invalid refresh token", apiErr.Message)
}

func TestFederatedLoginLinksExistingAccount(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "ann@example.com", "secret1", "Ann", domain.RoleAdmin)
	require.NoError(t, err)

	linked, pair, err := svc.FederatedLogin(ctx, "github", oidc.UserInfo{
		Subject: "gh-42",
		Email:   "ann@example.com",
		Name:    "Ann on GitHub",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	// Linking preserves the account: same id, password hash and role.
	require.Equal(t, registered.ID, linked.ID)
	require.Equal(t, "github", linked.Provider)
	require.Equal(t, "gh-42", linked.ProviderID)

	stored, err := svc.Store.Users().GetUserByID(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, registered.PasswordHash, stored.PasswordHash)
	require.Equal(t, domain.RoleAdmin, stored.Role)

	// The password still works after linking.
	_, _, err = svc.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
}

func TestFederatedLoginProvisionsNewUser(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	u, pair, err := svc.FederatedLogin(ctx, "google", oidc.UserInfo{
		Subject: "g-7",
		Email:   "new@example.com",
		Name:    "New User",
		Picture: "https://example.com/p.png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.Equal(t, domain.RoleUser, u.Role)
	require.False(t, u.HasPassword())
	require.Equal(t, "google", u.Provider)
}
