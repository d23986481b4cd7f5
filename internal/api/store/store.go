package store

import (
	"context"
	"errors"
	"time"

	"github.com/feedme/feedme/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Ingredients() Ingredients
	Recipes() Recipes
	Inventory() Inventory
	MealPlans() MealPlans

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during password login and registration.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// The unique index on email is the serialization point for concurrent
	// registrations: a duplicate insert returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser mutates name, picture, password hash and role.
	UpdateUser(ctx context.Context, u domain.User) error

	// LinkProvider attaches a federated provider to an existing account,
	// leaving the password hash and role untouched.
	LinkProvider(ctx context.Context, userID, provider, providerID string) error

	// ListUsers pages through users newest-first.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// DeleteUser cascades to owned recipes, inventory and meal plans.
	DeleteUser(ctx context.Context, userID string) error

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int, error)
}

type Ingredients interface {
	// CreateIngredient inserts a catalog entry; duplicate names return
	// ErrAlreadyExists.
	CreateIngredient(ctx context.Context, ing domain.Ingredient) error

	GetIngredientByID(ctx context.Context, id string) (domain.Ingredient, error)

	// GetIngredientByName supports find-or-create during recipe writes.
	GetIngredientByName(ctx context.Context, name string) (domain.Ingredient, error)

	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)

	UpdateIngredient(ctx context.Context, ing domain.Ingredient) error

	DeleteIngredient(ctx context.Context, id string) error

	CountIngredients(ctx context.Context) (int, error)
}

type Recipes interface {
	// CreateRecipe inserts the recipe row only; ingredient links and
	// dietary tags are written via the Replace methods.
	CreateRecipe(ctx context.Context, r domain.Recipe) error

	// GetRecipeByID returns the recipe with ingredients and dietary tags
	// loaded. Visibility is the caller's concern.
	GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error)

	// ListVisibleRecipes returns public recipes plus, when userID is
	// non-empty, that user's private ones. Nested rows are loaded.
	ListVisibleRecipes(ctx context.Context, userID string) ([]domain.Recipe, error)

	// ListVisibleByCuisine is ListVisibleRecipes filtered by cuisine type.
	ListVisibleByCuisine(ctx context.Context, cuisineType, userID string) ([]domain.Recipe, error)

	UpdateRecipe(ctx context.Context, r domain.Recipe) error

	DeleteRecipe(ctx context.Context, id string) error

	// ReplaceRecipeIngredients swaps the full ingredient list of a recipe.
	ReplaceRecipeIngredients(ctx context.Context, recipeID string, items []domain.RecipeIngredient) error

	// ReplaceDietaryTags swaps the full dietary tag list of a recipe.
	ReplaceDietaryTags(ctx context.Context, recipeID string, tags []string) error

	CountRecipes(ctx context.Context) (int, error)
}

type Inventory interface {
	ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)

	GetInventoryItem(ctx context.Context, id string) (domain.InventoryItem, error)

	AddInventoryItem(ctx context.Context, item domain.InventoryItem) error

	UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) error

	RemoveInventoryItem(ctx context.Context, id string) error

	// DeleteExpiredItems removes rows whose expiry passed before cutoff.
	DeleteExpiredItems(ctx context.Context, cutoff time.Time) (int64, error)
}

type MealPlans interface {
	CreateMealPlan(ctx context.Context, p domain.MealPlan) error

	// GetMealPlanByID returns the plan with its entries loaded.
	GetMealPlanByID(ctx context.Context, id string) (domain.MealPlan, error)

	ListMealPlans(ctx context.Context, userID string) ([]domain.MealPlan, error)

	UpdateMealPlan(ctx context.Context, p domain.MealPlan) error

	DeleteMealPlan(ctx context.Context, id string) error

	AddMealPlanEntry(ctx context.Context, e domain.MealPlanEntry) error

	RemoveMealPlanEntry(ctx context.Context, planID, entryID string) error

	CountMealPlans(ctx context.Context) (int, error)
}
