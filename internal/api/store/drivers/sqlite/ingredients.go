package sqlite

import (
	"context"

	"github.com/feedme/feedme/internal/api/domain"
)

type ingredientsRepo struct {
	db dbtx
}

const ingredientColumns = `id, name, category, shelf_life_days, created_at, updated_at`

func scanIngredient(row interface{ Scan(dest ...any) error }) (domain.Ingredient, error) {
	var ing domain.Ingredient
	err := row.Scan(
		&ing.ID,
		&ing.Name,
		&ing.Category,
		&ing.ShelfLifeDays,
		&ing.CreatedAt,
		&ing.UpdatedAt,
	)
	return ing, err
}

func (r *ingredientsRepo) CreateIngredient(ctx context.Context, ing domain.Ingredient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingredients (`+ingredientColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ing.ID, ing.Name, ing.Category, ing.ShelfLifeDays, ing.CreatedAt, ing.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *ingredientsRepo) GetIngredientByID(ctx context.Context, id string) (domain.Ingredient, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, id)
	ing, err := scanIngredient(row)
	if err != nil {
		return domain.Ingredient{}, mapNotFound(err)
	}
	return ing, nil
}

func (r *ingredientsRepo) GetIngredientByName(ctx context.Context, name string) (domain.Ingredient, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE name = ?`, name)
	ing, err := scanIngredient(row)
	if err != nil {
		return domain.Ingredient{}, mapNotFound(err)
	}
	return ing, nil
}

func (r *ingredientsRepo) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *ingredientsRepo) UpdateIngredient(ctx context.Context, ing domain.Ingredient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ingredients
		SET name = ?, category = ?, shelf_life_days = ?, updated_at = ?
		WHERE id = ?`,
		ing.Name, ing.Category, ing.ShelfLifeDays, ing.UpdatedAt, ing.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *ingredientsRepo) DeleteIngredient(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ingredientsRepo) CountIngredients(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ingredients`).Scan(&n)
	return n, err
}
