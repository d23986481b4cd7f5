package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, auth *AuthService, email string, role domain.Role) domain.Identity {
	t.Helper()

	u, _, err := auth.Register(context.Background(), email, "secret1", "Test User", role)
	require.NoError(t, err)
	return domain.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func TestRecipeVisibility(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com", "")
	other := registerUser(t, auth, "other@example.com", "")

	private, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{
		Name:     "Secret Stew",
		IsPublic: false,
	})
	require.NoError(t, err)

	public, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{
		Name:     "Open Omelette",
		IsPublic: true,
	})
	require.NoError(t, err)

	// Anonymous listing sees only public recipes.
	anon, err := recipes.ListRecipes(ctx, "")
	require.NoError(t, err)
	require.Len(t, anon, 1)
	require.Equal(t, public.ID, anon[0].ID)

	// The owner sees both.
	own, err := recipes.ListRecipes(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)

	// Another user cannot read the private recipe.
	_, err = recipes.GetRecipe(ctx, private.ID, other.ID)
	apiErr := apperr.From(err)
	require.NotNil(t, apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestRecipeFindOrCreateIngredients(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com", "")

	first, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{
		Name: "Tomato Soup",
		Ingredients: []RecipeIngredientInput{
			{Name: "Tomato", Quantity: 4, Unit: "pcs"},
			{Name: "Salt", Quantity: 1, Unit: "tsp"},
		},
	})
	require.NoError(t, err)
	require.Len(t, first.Ingredients, 2)

	// A second recipe reusing "Tomato" links the same catalog entry.
	second, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{
		Name: "Tomato Salad",
		Ingredients: []RecipeIngredientInput{
			{Name: "Tomato", Quantity: 2, Unit: "pcs"},
		},
	})
	require.NoError(t, err)
	require.Len(t, second.Ingredients, 1)

	var tomatoID string
	for _, ing := range first.Ingredients {
		if ing.Name == "Tomato" {
			tomatoID = ing.IngredientID
		}
	}
	require.NotEmpty(t, tomatoID)
	require.Equal(t, tomatoID, second.Ingredients[0].IngredientID)

	all, err := auth.Store.Ingredients().ListIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRecipeUpdateAndDeletePermissions(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com", "")
	other := registerUser(t, auth, "other@example.com", "")
	admin := registerUser(t, auth, "admin@example.com", domain.RoleAdmin)

	r, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{Name: "Original", IsPublic: true})
	require.NoError(t, err)

	// Only the owner updates; even admins do not edit others' recipes.
	_, err = recipes.UpdateRecipe(ctx, other, r.ID, RecipeInput{Name: "Hijack"})
	require.Equal(t, http.StatusForbidden, apperr.From(err).Status)

	updated, err := recipes.UpdateRecipe(ctx, owner, r.ID, RecipeInput{Name: "Renamed", IsPublic: true})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)

	// Another user cannot delete; an admin can.
	err = recipes.DeleteRecipe(ctx, other, r.ID)
	require.Equal(t, http.StatusForbidden, apperr.From(err).Status)

	require.NoError(t, recipes.DeleteRecipe(ctx, admin, r.ID))

	_, err = recipes.GetRecipe(ctx, r.ID, owner.ID)
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)
}

func TestRecipeDietaryTagsRoundTrip(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com", "")

	r, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{
		Name:        "Lentil Curry",
		DietaryTags: []string{"vegan", "gluten-free"},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"vegan", "gluten-free"}, r.DietaryTags)

	updated, err := recipes.UpdateRecipe(ctx, owner, r.ID, RecipeInput{
		Name:        "Lentil Curry",
		DietaryTags: []string{"vegan"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"vegan"}, updated.DietaryTags)
}
