package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/stretchr/testify/require"
)

func TestInventoryLifecycle(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	ingredients := &IngredientService{Store: auth.Store}
	inventory := &InventoryService{Store: auth.Store}
	ctx := context.Background()

	user := registerUser(t, auth, "user@example.com", "")
	other := registerUser(t, auth, "other@example.com", "")

	ing, err := ingredients.CreateIngredient(ctx, "Milk", "Dairy", 5)
	require.NoError(t, err)

	item, err := inventory.AddItem(ctx, user.ID, ing.ID, 2, "l", nil)
	require.NoError(t, err)
	require.Equal(t, "Milk", item.IngredientName)

	// Rows are owner-scoped.
	_, err = inventory.UpdateItem(ctx, other.ID, item.ID, 3, "", nil)
	require.Equal(t, http.StatusForbidden, apperr.From(err).Status)

	updated, err := inventory.UpdateItem(ctx, user.ID, item.ID, 3, "", nil)
	require.NoError(t, err)
	require.Equal(t, 3.0, updated.Quantity)
	require.Equal(t, "l", updated.Unit)

	require.NoError(t, inventory.RemoveItem(ctx, user.ID, item.ID))

	items, err := inventory.ListInventory(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestInventoryRejectsUnknownIngredient(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	inventory := &InventoryService{Store: auth.Store}
	ctx := context.Background()

	user := registerUser(t, auth, "user@example.com", "")

	_, err := inventory.AddItem(ctx, user.ID, "no-such-id", 1, "pcs", nil)
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)
}

func TestInventoryPurgeExpired(t *testing.T) {
	t.Parallel()

	auth := newTestAuthService(t)
	ingredients := &IngredientService{Store: auth.Store}
	inventory := &InventoryService{Store: auth.Store}
	ctx := context.Background()

	user := registerUser(t, auth, "user@example.com", "")

	ing, err := ingredients.CreateIngredient(ctx, "Yogurt", "Dairy", 3)
	require.NoError(t, err)

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	_, err = inventory.AddItem(ctx, user.ID, ing.ID, 1, "pcs", &past)
	require.NoError(t, err)
	_, err = inventory.AddItem(ctx, user.ID, ing.ID, 1, "pcs", &future)
	require.NoError(t, err)
	_, err = inventory.AddItem(ctx, user.ID, ing.ID, 1, "pcs", nil)
	require.NoError(t, err)

	n, err := inventory.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	items, err := inventory.ListInventory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
}
