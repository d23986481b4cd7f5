package service

import (
	"context"
	"errors"
	"time"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/pkg/idx"
)

// MealPlanService manages user-owned meal plans and their scheduled
// recipe entries.
type MealPlanService struct {
	Store store.Store

	Now func() time.Time
}

func (s *MealPlanService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MealPlanService) ListMealPlans(ctx context.Context, userID string) ([]domain.MealPlan, error) {
	return s.Store.MealPlans().ListMealPlans(ctx, userID)
}

func (s *MealPlanService) GetMealPlan(ctx context.Context, ident domain.Identity, id string) (domain.MealPlan, error) {
	p, err := s.Store.MealPlans().GetMealPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MealPlan{}, apperr.NotFound("Meal plan not found")
		}
		return domain.MealPlan{}, err
	}
	if !ident.Owns(p.UserID) {
		return domain.MealPlan{}, apperr.Forbidden("You do not have permission to view this meal plan")
	}
	return p, nil
}

func (s *MealPlanService) CreateMealPlan(ctx context.Context, userID string, startDate, endDate time.Time) (domain.MealPlan, error) {
	if endDate.Before(startDate) {
		return domain.MealPlan{}, apperr.BadRequest("End date must not be before start date")
	}

	now := s.now()
	p := domain.MealPlan{
		ID:        idx.New().String(),
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Entries:   []domain.MealPlanEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.MealPlans().CreateMealPlan(ctx, p); err != nil {
		return domain.MealPlan{}, err
	}
	return p, nil
}

func (s *MealPlanService) UpdateMealPlan(ctx context.Context, ident domain.Identity, id string, startDate, endDate time.Time) (domain.MealPlan, error) {
	p, err := s.GetMealPlan(ctx, ident, id)
	if err != nil {
		return domain.MealPlan{}, err
	}

	if !startDate.IsZero() {
		p.StartDate = startDate
	}
	if !endDate.IsZero() {
		p.EndDate = endDate
	}
	if p.EndDate.Before(p.StartDate) {
		return domain.MealPlan{}, apperr.BadRequest("End date must not be before start date")
	}
	p.UpdatedAt = s.now()

	if err := s.Store.MealPlans().UpdateMealPlan(ctx, p); err != nil {
		return domain.MealPlan{}, err
	}
	return p, nil
}

func (s *MealPlanService) DeleteMealPlan(ctx context.Context, ident domain.Identity, id string) error {
	if _, err := s.GetMealPlan(ctx, ident, id); err != nil {
		return err
	}
	return s.Store.MealPlans().DeleteMealPlan(ctx, id)
}

// AddEntry schedules a recipe on a day of the plan. The recipe must be
// visible to the caller.
func (s *MealPlanService) AddEntry(ctx context.Context, ident domain.Identity, planID, recipeID string, plannedDate time.Time, mealType string) (domain.MealPlan, error) {
	p, err := s.GetMealPlan(ctx, ident, planID)
	if err != nil {
		return domain.MealPlan{}, err
	}

	r, err := s.Store.Recipes().GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MealPlan{}, apperr.NotFound("Recipe not found")
		}
		return domain.MealPlan{}, err
	}
	if !r.VisibleTo(ident.ID) {
		return domain.MealPlan{}, apperr.Forbidden("You do not have permission to use this recipe")
	}

	e := domain.MealPlanEntry{
		ID:          idx.New().String(),
		MealPlanID:  p.ID,
		RecipeID:    r.ID,
		RecipeName:  r.Name,
		PlannedDate: plannedDate,
		MealType:    mealType,
	}
	if err := s.Store.MealPlans().AddMealPlanEntry(ctx, e); err != nil {
		return domain.MealPlan{}, err
	}

	return s.Store.MealPlans().GetMealPlanByID(ctx, p.ID)
}

func (s *MealPlanService) RemoveEntry(ctx context.Context, ident domain.Identity, planID, entryID string) error {
	if _, err := s.GetMealPlan(ctx, ident, planID); err != nil {
		return err
	}

	err := s.Store.MealPlans().RemoveMealPlanEntry(ctx, planID, entryID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Meal plan entry not found")
	}
	return err
}
