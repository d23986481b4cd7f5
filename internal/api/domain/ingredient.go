package domain

import "time"

// Ingredient is a catalog entry managed by admins. Names are globally
// unique; recipe creation finds-or-creates entries by name.
type Ingredient struct {
	ID            string
	Name          string
	Category      string
	ShelfLifeDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InventoryItem is one ingredient in a user's pantry.
type InventoryItem struct {
	ID             string
	UserID         string
	IngredientID   string
	IngredientName string // denormalized for responses
	Quantity       float64
	Unit           string
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
