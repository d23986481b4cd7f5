package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/pkg/idx"
)

// IngredientService manages the shared ingredient catalog. Writes are
// admin-only; the HTTP layer enforces the role.
type IngredientService struct {
	Store store.Store

	Now func() time.Time
}

func (s *IngredientService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *IngredientService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.Store.Ingredients().ListIngredients(ctx)
}

func (s *IngredientService) GetIngredient(ctx context.Context, id string) (domain.Ingredient, error) {
	ing, err := s.Store.Ingredients().GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Ingredient{}, apperr.NotFound("Ingredient not found")
		}
		return domain.Ingredient{}, err
	}
	return ing, nil
}

func (s *IngredientService) CreateIngredient(ctx context.Context, name, category string, shelfLifeDays int) (domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Ingredient{}, apperr.BadRequest("Ingredient name is required")
	}
	if category == "" {
		category = "Other"
	}
	if shelfLifeDays <= 0 {
		shelfLifeDays = 7
	}

	now := s.now()
	ing := domain.Ingredient{
		ID:            idx.New().String(),
		Name:          name,
		Category:      category,
		ShelfLifeDays: shelfLifeDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Ingredients().CreateIngredient(ctx, ing); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Ingredient{}, apperr.Conflict("Ingredient with this name already exists")
		}
		return domain.Ingredient{}, err
	}
	return ing, nil
}

func (s *IngredientService) UpdateIngredient(ctx context.Context, id, name, category string, shelfLifeDays int) (domain.Ingredient, error) {
	ing, err := s.GetIngredient(ctx, id)
	if err != nil {
		return domain.Ingredient{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		ing.Name = name
	}
	if category != "" {
		ing.Category = category
	}
	if shelfLifeDays > 0 {
		ing.ShelfLifeDays = shelfLifeDays
	}
	ing.UpdatedAt = s.now()

	if err := s.Store.Ingredients().UpdateIngredient(ctx, ing); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Ingredient{}, apperr.Conflict("Ingredient with this name already exists")
		}
		return domain.Ingredient{}, err
	}
	return ing, nil
}

func (s *IngredientService) DeleteIngredient(ctx context.Context, id string) error {
	err := s.Store.Ingredients().DeleteIngredient(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Ingredient not found")
	}
	return err
}
