package service

import (
	"context"
	"errors"
	"time"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/pkg/idx"
)

// InventoryService tracks per-user pantry stock. All operations are scoped
// to the calling user's own rows.
type InventoryService struct {
	Store store.Store

	Now func() time.Time
}

func (s *InventoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *InventoryService) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return s.Store.Inventory().ListInventory(ctx, userID)
}

// AddItem adds stock of an existing catalog ingredient to the user's pantry.
func (s *InventoryService) AddItem(ctx context.Context, userID, ingredientID string, quantity float64, unit string, expiresAt *time.Time) (domain.InventoryItem, error) {
	if quantity <= 0 {
		return domain.InventoryItem{}, apperr.BadRequest("Quantity must be positive")
	}

	ing, err := s.Store.Ingredients().GetIngredientByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InventoryItem{}, apperr.NotFound("Ingredient not found")
		}
		return domain.InventoryItem{}, err
	}

	now := s.now()
	item := domain.InventoryItem{
		ID:             idx.New().String(),
		UserID:         userID,
		IngredientID:   ing.ID,
		IngredientName: ing.Name,
		Quantity:       quantity,
		Unit:           unit,
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.Inventory().AddInventoryItem(ctx, item); err != nil {
		return domain.InventoryItem{}, err
	}
	return item, nil
}

// UpdateItem adjusts quantity, unit or expiry of one of the user's rows.
func (s *InventoryService) UpdateItem(ctx context.Context, userID, itemID string, quantity float64, unit string, expiresAt *time.Time) (domain.InventoryItem, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	if quantity > 0 {
		item.Quantity = quantity
	}
	if unit != "" {
		item.Unit = unit
	}
	if expiresAt != nil {
		item.ExpiresAt = expiresAt
	}
	item.UpdatedAt = s.now()

	if err := s.Store.Inventory().UpdateInventoryItem(ctx, item); err != nil {
		return domain.InventoryItem{}, err
	}
	return item, nil
}

func (s *InventoryService) RemoveItem(ctx context.Context, userID, itemID string) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	return s.Store.Inventory().RemoveInventoryItem(ctx, itemID)
}

// PurgeExpired deletes rows across all users whose expiry has passed.
func (s *InventoryService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Store.Inventory().DeleteExpiredItems(ctx, s.now())
}

func (s *InventoryService) ownedItem(ctx context.Context, userID, itemID string) (domain.InventoryItem, error) {
	item, err := s.Store.Inventory().GetInventoryItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InventoryItem{}, apperr.NotFound("Inventory item not found")
		}
		return domain.InventoryItem{}, err
	}
	if item.UserID != userID {
		return domain.InventoryItem{}, apperr.Forbidden("You do not have permission to modify this item")
	}
	return item, nil
}
