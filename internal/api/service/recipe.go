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

// RecipeIngredientInput names an ingredient by its catalog name; missing
// entries are created with default category and shelf life.
type RecipeIngredientInput struct {
	Name     string
	Quantity float64
	Unit     string
	Notes    string
}

// RecipeInput is the full recipe payload for create; on update nil slices
// mean leave the relation unchanged.
type RecipeInput struct {
	Name              string
	ImageURL          string
	PreparationSteps  string
	CookingTimeMins   int
	CuisineType       string
	SuitableMealTypes []string
	IsPublic          bool
	DietaryTags       []string
	Ingredients       []RecipeIngredientInput
}

type RecipeService struct {
	Store store.Store

	Now func() time.Time
}

func (s *RecipeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListRecipes returns public recipes plus the caller's own when userID is
// non-empty (anonymous callers pass "").
func (s *RecipeService) ListRecipes(ctx context.Context, userID string) ([]domain.Recipe, error) {
	return s.Store.Recipes().ListVisibleRecipes(ctx, userID)
}

// GetRecipe returns one recipe if it is public or owned by the caller.
func (s *RecipeService) GetRecipe(ctx context.Context, id, userID string) (domain.Recipe, error) {
	r, err := s.Store.Recipes().GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Recipe{}, apperr.NotFound("Recipe not found")
		}
		return domain.Recipe{}, err
	}
	if !r.VisibleTo(userID) {
		return domain.Recipe{}, apperr.Forbidden("You do not have permission to view this recipe")
	}
	return r, nil
}

// CreateRecipe inserts the recipe and its relations in one transaction,
// finding or creating catalog ingredients by name.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID string, input RecipeInput) (domain.Recipe, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Recipe{}, apperr.BadRequest("Recipe name is required")
	}

	now := s.now()
	recipeID := idx.New().String()

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		r := domain.Recipe{
			ID:                recipeID,
			UserID:            userID,
			Name:              strings.TrimSpace(input.Name),
			ImageURL:          input.ImageURL,
			PreparationSteps:  input.PreparationSteps,
			CookingTimeMins:   input.CookingTimeMins,
			CuisineType:       input.CuisineType,
			SuitableMealTypes: input.SuitableMealTypes,
			IsPublic:          input.IsPublic,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Recipes().CreateRecipe(ctx, r); err != nil {
			return err
		}

		items, err := s.resolveIngredients(ctx, tx, recipeID, input.Ingredients, now)
		if err != nil {
			return err
		}
		if err := tx.Recipes().ReplaceRecipeIngredients(ctx, recipeID, items); err != nil {
			return err
		}
		return tx.Recipes().ReplaceDietaryTags(ctx, recipeID, input.DietaryTags)
	})
	if err != nil {
		return domain.Recipe{}, err
	}

	return s.Store.Recipes().GetRecipeByID(ctx, recipeID)
}

// UpdateRecipe replaces the recipe fields and, when slices are non-nil,
// its relations. Only the owner may update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, ident domain.Identity, id string, input RecipeInput) (domain.Recipe, error) {
	existing, err := s.Store.Recipes().GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Recipe{}, apperr.NotFound("Recipe not found")
		}
		return domain.Recipe{}, err
	}
	if existing.UserID != ident.ID {
		return domain.Recipe{}, apperr.Forbidden("You do not have permission to update this recipe")
	}

	now := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		r := existing
		if strings.TrimSpace(input.Name) != "" {
			r.Name = strings.TrimSpace(input.Name)
		}
		r.ImageURL = input.ImageURL
		if input.PreparationSteps != "" {
			r.PreparationSteps = input.PreparationSteps
		}
		if input.CookingTimeMins > 0 {
			r.CookingTimeMins = input.CookingTimeMins
		}
		if input.CuisineType != "" {
			r.CuisineType = input.CuisineType
		}
		if input.SuitableMealTypes != nil {
			r.SuitableMealTypes = input.SuitableMealTypes
		}
		r.IsPublic = input.IsPublic
		r.UpdatedAt = now

		if err := tx.Recipes().UpdateRecipe(ctx, r); err != nil {
			return err
		}

		if input.Ingredients != nil {
			items, err := s.resolveIngredients(ctx, tx, id, input.Ingredients, now)
			if err != nil {
				return err
			}
			if err := tx.Recipes().ReplaceRecipeIngredients(ctx, id, items); err != nil {
				return err
			}
		}
		if input.DietaryTags != nil {
			if err := tx.Recipes().ReplaceDietaryTags(ctx, id, input.DietaryTags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Recipe{}, err
	}

	return s.Store.Recipes().GetRecipeByID(ctx, id)
}

// DeleteRecipe removes a recipe. Owners may delete their own; admins may
// delete any.
func (s *RecipeService) DeleteRecipe(ctx context.Context, ident domain.Identity, id string) error {
	r, err := s.Store.Recipes().GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Recipe not found")
		}
		return err
	}
	if !ident.Owns(r.UserID) {
		return apperr.Forbidden("You do not have permission to delete this recipe")
	}
	return s.Store.Recipes().DeleteRecipe(ctx, id)
}

func (s *RecipeService) resolveIngredients(ctx context.Context, tx store.Tx, recipeID string, inputs []RecipeIngredientInput, now time.Time) ([]domain.RecipeIngredient, error) {
	items := make([]domain.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, apperr.BadRequest("Ingredient name is required")
		}

		ing, err := tx.Ingredients().GetIngredientByName(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			ing = domain.Ingredient{
				ID:            idx.New().String(),
				Name:          name,
				Category:      "Other",
				ShelfLifeDays: 7,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			err = tx.Ingredients().CreateIngredient(ctx, ing)
		}
		if err != nil {
			return nil, err
		}

		items = append(items, domain.RecipeIngredient{
			ID:           idx.New().String(),
			RecipeID:     recipeID,
			IngredientID: ing.ID,
			Name:         ing.Name,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Notes:        in.Notes,
		})
	}
	return items, nil
}
