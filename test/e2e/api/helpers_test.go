package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/feedme/feedme/internal/api/http"
	"github.com/feedme/feedme/internal/api/oidc"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/internal/api/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// setupServer boots the full router against a fresh on-disk sqlite
// database and returns a running test server.
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens := service.NewTokenService(
		[]byte("e2e-access-secret"),
		[]byte("e2e-refresh-secret"),
		0, 0,
	)

	router := httpapi.NewRouter(st, oidc.NewRegistry(oidc.Config{}), "http://localhost:5173", false, logger)
	router.TokenService = tokens
	router.AuthService = &service.AuthService{Store: st, Tokens: tokens}
	router.UserService = &service.UserService{Store: st}
	router.RecipeService = &service.RecipeService{Store: st}
	router.IngredientService = &service.IngredientService{Store: st}
	router.InventoryService = &service.InventoryService{Store: st}
	router.MealPlanService = &service.MealPlanService{Store: st}
	router.RecommendationService = &service.RecommendationService{Store: st}
	router.AdminService = &service.AdminService{Store: st, StartedAt: time.Now()}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// envelope mirrors the wire response shape with the payload left raw so
// each test can decode the part it cares about.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// doJSON issues a request with an optional bearer token and JSON body and
// decodes the response envelope.
func doJSON(t *testing.T, method, url, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// register creates an account through the public endpoint and returns the
// issued token pair.
func register(t *testing.T, baseURL, email, role string) tokenPair {
	t.Helper()

	code, env := doJSON(t, http.MethodPost, baseURL+"/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret1",
		"name":     "E2E User",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, code)

	var pair tokenPair
	decodeData(t, env, &pair)
	require.NotEmpty(t, pair.AccessToken)
	return pair
}
