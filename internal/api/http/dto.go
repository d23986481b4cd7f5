package http

import (
	"time"

	"github.com/feedme/feedme/internal/api/domain"
)

// Response shapes are kept separate from domain types so the wire contract
// (camelCase, no password hashes) survives internal refactors.

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	Role      string    `json:"role"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Picture:   u.Picture,
		Role:      string(u.Role),
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type recipeIngredientResponse struct {
	ID           string  `json:"id"`
	IngredientID string  `json:"ingredientId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Notes        string  `json:"notes,omitempty"`
}

type recipeResponse struct {
	ID                string                     `json:"id"`
	UserID            string                     `json:"userId"`
	Name              string                     `json:"name"`
	ImageURL          string                     `json:"imageUrl,omitempty"`
	PreparationSteps  string                     `json:"preparationSteps"`
	CookingTime       int                        `json:"cookingTime"`
	CuisineType       string                     `json:"cuisineType"`
	SuitableMealTypes []string                   `json:"suitableMealTypes"`
	IsPublic          bool                       `json:"isPublic"`
	Ingredients       []recipeIngredientResponse `json:"ingredients"`
	DietaryTags       []string                   `json:"dietaryRestrictions"`
	CreatedAt         time.Time                  `json:"createdAt"`
	UpdatedAt         time.Time                  `json:"updatedAt"`
}

func toRecipeResponse(r domain.Recipe) recipeResponse {
	ingredients := make([]recipeIngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, recipeIngredientResponse{
			ID:           ing.ID,
			IngredientID: ing.IngredientID,
			Name:         ing.Name,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
			Notes:        ing.Notes,
		})
	}
	return recipeResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		Name:              r.Name,
		ImageURL:          r.ImageURL,
		PreparationSteps:  r.PreparationSteps,
		CookingTime:       r.CookingTimeMins,
		CuisineType:       r.CuisineType,
		SuitableMealTypes: r.SuitableMealTypes,
		IsPublic:          r.IsPublic,
		Ingredients:       ingredients,
		DietaryTags:       r.DietaryTags,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toRecipeResponses(recipes []domain.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toRecipeResponse(r))
	}
	return out
}

type ingredientResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	ShelfLifeDays int       `json:"shelfLifeDays"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toIngredientResponse(ing domain.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:            ing.ID,
		Name:          ing.Name,
		Category:      ing.Category,
		ShelfLifeDays: ing.ShelfLifeDays,
		CreatedAt:     ing.CreatedAt,
		UpdatedAt:     ing.UpdatedAt,
	}
}

type inventoryItemResponse struct {
	ID             string     `json:"id"`
	IngredientID   string     `json:"ingredientId"`
	IngredientName string     `json:"ingredientName"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toInventoryItemResponse(item domain.InventoryItem) inventoryItemResponse {
	return inventoryItemResponse{
		ID:             item.ID,
		IngredientID:   item.IngredientID,
		IngredientName: item.IngredientName,
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		ExpiresAt:      item.ExpiresAt,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

type mealPlanEntryResponse struct {
	ID          string    `json:"id"`
	RecipeID    string    `json:"recipeId"`
	RecipeName  string    `json:"recipeName"`
	PlannedDate time.Time `json:"plannedDate"`
	MealType    string    `json:"mealType"`
}

type mealPlanResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	StartDate time.Time               `json:"startDate"`
	EndDate   time.Time               `json:"endDate"`
	Recipes   []mealPlanEntryResponse `json:"recipes"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

func toMealPlanResponse(p domain.MealPlan) mealPlanResponse {
	entries := make([]mealPlanEntryResponse, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, mealPlanEntryResponse{
			ID:          e.ID,
			RecipeID:    e.RecipeID,
			RecipeName:  e.RecipeName,
			PlannedDate: e.PlannedDate,
			MealType:    e.MealType,
		})
	}
	return mealPlanResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Recipes:   entries,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
