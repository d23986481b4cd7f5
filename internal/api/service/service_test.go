package service

import (
	"path/filepath"
	"testing"

	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/internal/api/store/drivers/sqlite"
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

func newTestTokenService() *TokenService {
	return NewTokenService(
		[]byte("test-access-secret"),
		[]byte("test-refresh-secret"),
		0, 0,
	)
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Store:  newTestStore(t),
		Tokens: newTestTokenService(),
	}
}
