package service

import (
	"context"
	"math/rand"
	"strings"

	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/store"
)

// RecommendationService answers thin discovery queries over the recipes
// visible to the caller. There is no scoring model; these are filters.
type RecommendationService struct {
	Store store.Store
}

// ByIngredients returns visible recipes whose every ingredient is present
// in the user's inventory.
func (s *RecommendationService) ByIngredients(ctx context.Context, userID string) ([]domain.Recipe, error) {
	inventory, err := s.Store.Inventory().ListInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(inventory))
	for _, item := range inventory {
		have[item.IngredientID] = struct{}{}
	}

	recipes, err := s.Store.Recipes().ListVisibleRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	coverable := []domain.Recipe{}
	for _, r := range recipes {
		if len(r.Ingredients) == 0 {
			continue
		}
		ok := true
		for _, ing := range r.Ingredients {
			if _, found := have[ing.IngredientID]; !found {
				ok = false
				break
			}
		}
		if ok {
			coverable = append(coverable, r)
		}
	}
	return coverable, nil
}

// ByCuisine returns visible recipes of the given cuisine type.
func (s *RecommendationService) ByCuisine(ctx context.Context, userID, cuisineType string) ([]domain.Recipe, error) {
	return s.Store.Recipes().ListVisibleByCuisine(ctx, cuisineType, userID)
}

// ByDietary returns visible recipes carrying every requested dietary tag.
func (s *RecommendationService) ByDietary(ctx context.Context, userID string, tags []string) ([]domain.Recipe, error) {
	recipes, err := s.Store.Recipes().ListVisibleRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return recipes, nil
	}

	wanted := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		wanted[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	matched := []domain.Recipe{}
	for _, r := range recipes {
		found := make(map[string]struct{}, len(r.DietaryTags))
		for _, t := range r.DietaryTags {
			found[strings.ToLower(t)] = struct{}{}
		}
		ok := true
		for t := range wanted {
			if _, present := found[t]; !present {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Random returns up to n randomly chosen visible recipes.
func (s *RecommendationService) Random(ctx context.Context, userID string, n int) ([]domain.Recipe, error) {
	recipes, err := s.Store.Recipes().ListVisibleRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 5
	}
	if len(recipes) <= n {
		return recipes, nil
	}

	rand.Shuffle(len(recipes), func(i, j int) {
		recipes[i], recipes[j] = recipes[j], recipes[i]
	})
	return recipes[:n], nil
}
