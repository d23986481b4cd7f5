package domain

import "time"

// MealPlan is a user-owned date range with scheduled recipes.
type MealPlan struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Entries   []MealPlanEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MealPlanEntry schedules one recipe on one day of a plan.
type MealPlanEntry struct {
	ID          string
	MealPlanID  string
	RecipeID    string
	RecipeName  string // denormalized for responses
	PlannedDate time.Time
	MealType    string // "breakfast", "lunch", "dinner", ...
}
