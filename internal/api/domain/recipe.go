package domain

import "time"

// Recipe is a user-owned recipe. Public recipes are visible to everyone;
// private ones only to their owner (and admins).
type Recipe struct {
	ID                string
	UserID            string
	Name              string
	ImageURL          string
	PreparationSteps  string
	CookingTimeMins   int
	CuisineType       string
	SuitableMealTypes []string
	IsPublic          bool
	Ingredients       []RecipeIngredient
	DietaryTags       []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// VisibleTo reports whether the recipe may be read by the given user id
// (empty id means anonymous).
func (r Recipe) VisibleTo(userID string) bool {
	return r.IsPublic || (userID != "" && r.UserID == userID)
}

// RecipeIngredient links a recipe to an ingredient with an amount.
type RecipeIngredient struct {
	ID           string
	RecipeID     string
	IngredientID string
	Name         string // denormalized ingredient name for responses
	Quantity     float64
	Unit         string
	Notes        string
}
