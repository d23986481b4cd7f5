package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecommendByIngredients(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	inventory := &InventoryService{Store: auth.Store}
	recommend := &RecommendationService{Store: auth.Store}
	ctx := context.Background()

	user := registerUser(t, auth, "cook@example.com", "")

	coverable, err := recipes.CreateRecipe(ctx, user.ID, RecipeInput{
		Name:     "Buttered Toast",
		IsPublic: true,
		Ingredients: []RecipeIngredientInput{
			{Name: "Bread", Quantity: 2, Unit: "slices"},
			{Name: "Butter", Quantity: 10, Unit: "g"},
		},
	})
	require.NoError(t, err)

	_, err = recipes.CreateRecipe(ctx, user.ID, RecipeInput{
		Name:     "Caviar Toast",
		IsPublic: true,
		Ingredients: []RecipeIngredientInput{
			{Name: "Bread", Quantity: 2, Unit: "slices"},
			{Name: "Caviar", Quantity: 30, Unit: "g"},
		},
	})
	require.NoError(t, err)

	// Stock only bread and butter.
	for _, ing := range coverable.Ingredients {
		_, err := inventory.AddItem(ctx, user.ID, ing.IngredientID, 5, ing.Unit, nil)
		require.NoError(t, err)
	}

	matches, err := recommend.ByIngredients(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, coverable.ID, matches[0].ID)
}

func TestRecommendByCuisineAndDietary(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	recommend := &RecommendationService{Store: auth.Store}
	ctx := context.Background()

	user := registerUser(t, auth, "cook@example.com", "")

	_, err := recipes.CreateRecipe(ctx, user.ID, RecipeInput{
		Name:        "Pad Thai",
		CuisineType: "Thai",
		IsPublic:    true,
		DietaryTags: []string{"gluten-free"},
	})
	require.NoError(t, err)

	_, err = recipes.CreateRecipe(ctx, user.ID, RecipeInput{
		Name:        "Green Curry",
		CuisineType: "Thai",
		IsPublic:    true,
		DietaryTags: []string{"vegan", "gluten-free"},
	})
	require.NoError(t, err)

	thai, err := recommend.ByCuisine(ctx, user.ID, "thai")
	require.NoError(t, err)
	require.Len(t, thai, 2)

	vegan, err := recommend.ByDietary(ctx, user.ID, []string{"vegan"})
	require.NoError(t, err)
	require.Len(t, vegan, 1)
	require.Equal(t, "Green Curry", vegan[0].Name)
}

func TestRecommendRandomBounded(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	recommend := &RecommendationService{Store: auth.Store}
	ctx := context.Background()

	user := registerUser(t, auth, "cook@example.com", "")

	for _, name := range []string{"A", "B", "C", "D"} {
		_, err := recipes.CreateRecipe(ctx, user.ID, RecipeInput{Name: name, IsPublic: true})
		require.NoError(t, err)
	}

	picks, err := recommend.Random(ctx, user.ID, 2)
	require.NoError(t, err)
	require.Len(t, picks, 2)

	all, err := recommend.Random(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
}
