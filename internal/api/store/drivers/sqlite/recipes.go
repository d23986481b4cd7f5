package sqlite

import (
	"context"
	"strings"

	"github.com/feedme/feedme/internal/api/domain"
)

type recipesRepo struct {
	db dbtx
}

const recipeColumns = `id, user_id, name, image_url, preparation_steps, cooking_time_mins, cuisine_type, suitable_meal_types, is_public, created_at, updated_at`

func scanRecipe(row interface{ Scan(dest ...any) error }) (domain.Recipe, error) {
	var (
		r         domain.Recipe
		mealTypes string
	)
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Name,
		&r.ImageURL,
		&r.PreparationSteps,
		&r.CookingTimeMins,
		&r.CuisineType,
		&mealTypes,
		&r.IsPublic,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return domain.Recipe{}, err
	}
	r.SuitableMealTypes = splitList(mealTypes)
	return r, nil
}

// suitable_meal_types is a short fixed vocabulary, stored comma-joined
// rather than in its own table.
func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func (r *recipesRepo) CreateRecipe(ctx context.Context, rec domain.Recipe) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Name, rec.ImageURL, rec.PreparationSteps,
		rec.CookingTimeMins, rec.CuisineType, joinList(rec.SuitableMealTypes),
		rec.IsPublic, rec.CreatedAt, rec.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *recipesRepo) GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	rec, err := scanRecipe(row)
	if err != nil {
		return domain.Recipe{}, mapNotFound(err)
	}
	if err := r.loadNested(ctx, []*domain.Recipe{&rec}); err != nil {
		return domain.Recipe{}, err
	}
	return rec, nil
}

func (r *recipesRepo) ListVisibleRecipes(ctx context.Context, userID string) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recipeColumns+` FROM recipes
		WHERE is_public = 1 OR user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *recipesRepo) ListVisibleByCuisine(ctx context.Context, cuisineType, userID string) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recipeColumns+` FROM recipes
		WHERE cuisine_type = ? COLLATE NOCASE AND (is_public = 1 OR user_id = ?)
		ORDER BY created_at DESC`, cuisineType, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *recipesRepo) UpdateRecipe(ctx context.Context, rec domain.Recipe) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recipes
		SET name = ?, image_url = ?, preparation_steps = ?, cooking_time_mins = ?,
		    cuisine_type = ?, suitable_meal_types = ?, is_public = ?, updated_at = ?
		WHERE id = ?`,
		rec.Name, rec.ImageURL, rec.PreparationSteps, rec.CookingTimeMins,
		rec.CuisineType, joinList(rec.SuitableMealTypes), rec.IsPublic,
		rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *recipesRepo) DeleteRecipe(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *recipesRepo) ReplaceRecipeIngredients(ctx context.Context, recipeID string, items []domain.RecipeIngredient) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}
	for _, item := range items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id, quantity, unit, notes)
			VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, recipeID, item.IngredientID, item.Quantity, item.Unit, item.Notes,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *recipesRepo) ReplaceDietaryTags(ctx context.Context, recipeID string, tags []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_dietary_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}
	for _, tag := range tags {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO recipe_dietary_tags (id, recipe_id, tag)
			VALUES (?, ?, ?)`,
			newRowID(), recipeID, tag,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *recipesRepo) CountRecipes(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&n)
	return n, err
}

func (r *recipesRepo) collect(ctx context.Context, rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}) ([]domain.Recipe, error) {
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*domain.Recipe, len(recipes))
	for i := range recipes {
		ptrs[i] = &recipes[i]
	}
	if err := r.loadNested(ctx, ptrs); err != nil {
		return nil, err
	}
	return recipes, nil
}

// loadNested fills Ingredients and DietaryTags for each recipe in one query
// per relation rather than one per recipe.
func (r *recipesRepo) loadNested(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Recipe, len(recipes))
	args := make([]any, 0, len(recipes))
	placeholders := make([]string, 0, len(recipes))
	for _, rec := range recipes {
		rec.Ingredients = []domain.RecipeIngredient{}
		rec.DietaryTags = []string{}
		byID[rec.ID] = rec
		args = append(args, rec.ID)
		placeholders = append(placeholders, "?")
	}
	in := "(" + strings.Join(placeholders, ",") + ")"

	rows, err := r.db.QueryContext(ctx, `
		SELECT ri.id, ri.recipe_id, ri.ingredient_id, i.name, ri.quantity, ri.unit, ri.notes
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN `+in, args...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var item domain.RecipeIngredient
		if err := rows.Scan(&item.ID, &item.RecipeID, &item.IngredientID, &item.Name, &item.Quantity, &item.Unit, &item.Notes); err != nil {
			rows.Close()
			return err
		}
		if rec, ok := byID[item.RecipeID]; ok {
			rec.Ingredients = append(rec.Ingredients, item)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	tagRows, err := r.db.QueryContext(ctx, `
		SELECT recipe_id, tag FROM recipe_dietary_tags
		WHERE recipe_id IN `+in, args...)
	if err != nil {
		return err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var recipeID, tag string
		if err := tagRows.Scan(&recipeID, &tag); err != nil {
			return err
		}
		if rec, ok := byID[recipeID]; ok {
			rec.DietaryTags = append(rec.DietaryTags, tag)
		}
	}
	return tagRows.Err()
}
