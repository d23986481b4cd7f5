package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/stretchr/testify/require"
)

func TestMealPlanLifecycle(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	plans := &MealPlanService{Store: auth.Store}
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com", "")
	other := registerUser(t, auth, "other@example.com", "")

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	p, err := plans.CreateMealPlan(ctx, owner.ID, start, end)
	require.NoError(t, err)
	require.Empty(t, p.Entries)

	// Inverted ranges are rejected.
	_, err = plans.CreateMealPlan(ctx, owner.ID, end, start)
	require.Equal(t, http.StatusBadRequest, apperr.From(err).Status)

	// Plans are private to their owner.
	_, err = plans.GetMealPlan(ctx, other, p.ID)
	require.Equal(t, http.StatusForbidden, apperr.From(err).Status)

	r, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{Name: "Porridge", IsPublic: true})
	require.NoError(t, err)

	withEntry, err := plans.AddEntry(ctx, owner, p.ID, r.ID, start.AddDate(0, 0, 1), "breakfast")
	require.NoError(t, err)
	require.Len(t, withEntry.Entries, 1)
	require.Equal(t, "Porridge", withEntry.Entries[0].RecipeName)

	require.NoError(t, plans.RemoveEntry(ctx, owner, p.ID, withEntry.Entries[0].ID))

	err = plans.RemoveEntry(ctx, owner, p.ID, withEntry.Entries[0].ID)
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)

	require.NoError(t, plans.DeleteMealPlan(ctx, owner, p.ID))

	_, err = plans.GetMealPlan(ctx, owner, p.ID)
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)
}

func TestMealPlanEntryRequiresVisibleRecipe(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	recipes := &RecipeService{Store: auth.Store}
	plans := &MealPlanService{Store: auth.Store}
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com", "")
	planner := registerUser(t, auth, "planner@example.com", "")

	hidden, err := recipes.CreateRecipe(ctx, owner.ID, RecipeInput{Name: "Secret Stew", IsPublic: false})
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p, err := plans.CreateMealPlan(ctx, planner.ID, start, start.AddDate(0, 0, 6))
	require.NoError(t, err)

	_, err = plans.AddEntry(ctx, planner, p.ID, hidden.ID, start, "dinner")
	require.Equal(t, http.StatusForbidden, apperr.From(err).Status)
}
