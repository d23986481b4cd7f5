package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	srv := setupServer(t)

	pair := register(t, srv.URL, "ann@example.com", "")

	// Duplicate registration conflicts regardless of password.
	code, env := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/register", "", map[string]string{
		"email":    "ann@example.com",
		"password": "other-password",
		"name":     "Someone Else",
	})
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "User with this email already exists", env.Message)

	// Login returns a fresh pair.
	code, env = doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "", map[string]string{
		"email":    "ann@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Login successful", env.Message)

	var loginPair tokenPair
	decodeData(t, env, &loginPair)
	require.NotEmpty(t, loginPair.AccessToken)
	require.Positive(t, loginPair.ExpiresIn)

	// Refresh rotates the pair.
	code, env = doJSON(t, http.MethodPost, srv.URL+"/v1/auth/refresh-token", "", map[string]string{
		"refreshToken": loginPair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Token refreshed successfully", env.Message)

	var rotated tokenPair
	decodeData(t, env, &rotated)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEmpty(t, rotated.RefreshToken)

	// An access token is never accepted as a refresh token.
	code, env = doJSON(t, http.MethodPost, srv.URL+"/v1/auth/refresh-token", "", map[string]string{
		"refreshToken": pair.AccessToken,
	})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid refresh token", env.Message)

	// The rotated access token authenticates /users/me.
	code, env = doJSON(t, http.MethodGet, srv.URL+"/v1/users/me", rotated.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeData(t, env, &me)
	require.Equal(t, "ann@example.com", me.Email)
	require.Equal(t, "user", me.Role)

	// Logout is acknowledged; tokens are stateless.
	code, env = doJSON(t, http.MethodPost, srv.URL+"/v1/auth/logout", rotated.AccessToken, map[string]string{})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Logged out successfully", env.Message)
}

func TestLoginFailureShapes(t *testing.T) {
	srv := setupServer(t)

	register(t, srv.URL, "ann@example.com", "")

	// Wrong password and unknown email produce identical responses.
	codeA, envA := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "", map[string]string{
		"email":    "ann@example.com",
		"password": "wrong",
	})
	codeB, envB := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})

	require.Equal(t, http.StatusUnauthorized, codeA)
	require.Equal(t, codeA, codeB)
	require.Equal(t, "Invalid email or password", envA.Message)
	require.Equal(t, envA.Message, envB.Message)
}

func TestRecipeFlow(t *testing.T) {
	srv := setupServer(t)

	owner := register(t, srv.URL, "owner@example.com", "")
	reader := register(t, srv.URL, "reader@example.com", "")

	// Create one private and one public recipe.
	code, env := doJSON(t, http.MethodPost, srv.URL+"/v1/recipes", owner.AccessToken, map[string]any{
		"name":        "Secret Stew",
		"isPublic":    false,
		"cookingTime": 45,
		"ingredients": []map[string]any{
			{"name": "Beef", "quantity": 500, "unit": "g"},
		},
	})
	require.Equal(t, http.StatusCreated, code)

	var private struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &private)

	code, env = doJSON(t, http.MethodPost, srv.URL+"/v1/recipes", owner.AccessToken, map[string]any{
		"name":     "Open Omelette",
		"isPublic": true,
	})
	require.Equal(t, http.StatusCreated, code)

	var public struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &public)

	// Anonymous listing sees only the public recipe.
	code, env = doJSON(t, http.MethodGet, srv.URL+"/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, code)

	var listed []struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, public.ID, listed[0].ID)

	// The owner sees both.
	code, env = doJSON(t, http.MethodGet, srv.URL+"/v1/recipes", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, env, &listed)
	require.Len(t, listed, 2)

	// Another user cannot read the private recipe.
	code, env = doJSON(t, http.MethodGet, srv.URL+"/v1/recipes/"+private.ID, reader.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "You do not have permission to view this recipe", env.Message)

	// Nor update someone else's recipe.
	code, _ = doJSON(t, http.MethodPut, srv.URL+"/v1/recipes/"+public.ID, reader.AccessToken, map[string]any{
		"name":     "Hijacked",
		"isPublic": true,
	})
	require.Equal(t, http.StatusForbidden, code)

	// The owner deletes; a later read is a 404.
	code, _ = doJSON(t, http.MethodDelete, srv.URL+"/v1/recipes/"+public.ID, owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, http.MethodGet, srv.URL+"/v1/recipes/"+public.ID, owner.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestInventoryAndRecommendations(t *testing.T) {
	srv := setupServer(t)

	user := register(t, srv.URL, "cook@example.com", "")

	// Creating a recipe provisions catalog ingredients on the fly.
	code, env := doJSON(t, http.MethodPost, srv.URL+"/v1/recipes", user.AccessToken, map[string]any{
		"name":     "Buttered Toast",
		"isPublic": true,
		"ingredients": []map[string]any{
			{"name": "Bread", "quantity": 2, "unit": "slices"},
			{"name": "Butter", "quantity": 10, "unit": "g"},
		},
	})
	require.Equal(t, http.StatusCreated, code)

	var recipe struct {
		ID          string `json:"id"`
		Ingredients []struct {
			IngredientID string `json:"ingredientId"`
			Unit         string `json:"unit"`
		} `json:"ingredients"`
	}
	decodeData(t, env, &recipe)
	require.Len(t, recipe.Ingredients, 2)

	// Stock both ingredients.
	for _, ing := range recipe.Ingredients {
		code, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/inventory", user.AccessToken, map[string]any{
			"ingredientId": ing.IngredientID,
			"quantity":     5,
			"unit":         ing.Unit,
		})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env = doJSON(t, http.MethodGet, srv.URL+"/v1/recommendations/by-ingredients", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	var matches []struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &matches)
	require.Len(t, matches, 1)
	require.Equal(t, recipe.ID, matches[0].ID)
}

func TestAdminEndpoints(t *testing.T) {
	srv := setupServer(t)

	user := register(t, srv.URL, "user@example.com", "")
	admin := register(t, srv.URL, "admin@example.com", "admin")

	// A regular user is rejected by the role gate.
	code, env := doJSON(t, http.MethodGet, srv.URL+"/v1/admin/stats", user.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "Insufficient permissions", env.Message)

	code, env = doJSON(t, http.MethodGet, srv.URL+"/v1/admin/stats", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	var stats struct {
		TotalUsers   int `json:"totalUsers"`
		TotalRecipes int `json:"totalRecipes"`
	}
	decodeData(t, env, &stats)
	require.Equal(t, 2, stats.TotalUsers)
	require.Equal(t, 0, stats.TotalRecipes)

	code, env = doJSON(t, http.MethodGet, srv.URL+"/v1/admin/health", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	var health struct {
		Status string `json:"status"`
	}
	decodeData(t, env, &health)
	require.Equal(t, "healthy", health.Status)
}

func TestPublicHealth(t *testing.T) {
	srv := setupServer(t)

	code, env := doJSON(t, http.MethodGet, srv.URL+"/v1/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", env.Status)
}
