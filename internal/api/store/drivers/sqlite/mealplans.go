package sqlite

import (
	"context"
	"strings"

	"github.com/feedme/feedme/internal/api/domain"
)

type mealPlansRepo struct {
	db dbtx
}

const mealPlanColumns = `id, user_id, start_date, end_date, created_at, updated_at`

func scanMealPlan(row interface{ Scan(dest ...any) error }) (domain.MealPlan, error) {
	var p domain.MealPlan
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *mealPlansRepo) CreateMealPlan(ctx context.Context, p domain.MealPlan) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (`+mealPlanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *mealPlansRepo) GetMealPlanByID(ctx context.Context, id string) (domain.MealPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mealPlanColumns+` FROM meal_plans WHERE id = ?`, id)
	p, err := scanMealPlan(row)
	if err != nil {
		return domain.MealPlan{}, mapNotFound(err)
	}
	if err := r.loadEntries(ctx, []*domain.MealPlan{&p}); err != nil {
		return domain.MealPlan{}, err
	}
	return p, nil
}

func (r *mealPlansRepo) ListMealPlans(ctx context.Context, userID string) ([]domain.MealPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+mealPlanColumns+` FROM meal_plans
		WHERE user_id = ?
		ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.MealPlan{}
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*domain.MealPlan, len(plans))
	for i := range plans {
		ptrs[i] = &plans[i]
	}
	if err := r.loadEntries(ctx, ptrs); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mealPlansRepo) UpdateMealPlan(ctx context.Context, p domain.MealPlan) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE meal_plans
		SET start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`,
		p.StartDate, p.EndDate, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *mealPlansRepo) DeleteMealPlan(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *mealPlansRepo) AddMealPlanEntry(ctx context.Context, e domain.MealPlanEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_plan_recipes (id, meal_plan_id, recipe_id, planned_date, meal_type)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.MealPlanID, e.RecipeID, e.PlannedDate, e.MealType,
	)
	return mapConstraint(err)
}

func (r *mealPlansRepo) RemoveMealPlanEntry(ctx context.Context, planID, entryID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM meal_plan_recipes WHERE id = ? AND meal_plan_id = ?`,
		entryID, planID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *mealPlansRepo) CountMealPlans(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meal_plans`).Scan(&n)
	return n, err
}

func (r *mealPlansRepo) loadEntries(ctx context.Context, plans []*domain.MealPlan) error {
	if len(plans) == 0 {
		return nil
	}

	byID := make(map[string]*domain.MealPlan, len(plans))
	args := make([]any, 0, len(plans))
	placeholders := make([]string, 0, len(plans))
	for _, p := range plans {
		p.Entries = []domain.MealPlanEntry{}
		byID[p.ID] = p
		args = append(args, p.ID)
		placeholders = append(placeholders, "?")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT mpr.id, mpr.meal_plan_id, mpr.recipe_id, rec.name, mpr.planned_date, mpr.meal_type
		FROM meal_plan_recipes mpr
		JOIN recipes rec ON rec.id = mpr.recipe_id
		WHERE mpr.meal_plan_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY mpr.planned_date ASC`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.MealPlanEntry
		if err := rows.Scan(&e.ID, &e.MealPlanID, &e.RecipeID, &e.RecipeName, &e.PlannedDate, &e.MealType); err != nil {
			return err
		}
		if p, ok := byID[e.MealPlanID]; ok {
			p.Entries = append(p.Entries, e)
		}
	}
	return rows.Err()
}
