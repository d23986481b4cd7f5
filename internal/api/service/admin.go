package service

import (
	"context"
	"time"

	"github.com/feedme/feedme/internal/api/store"
)

// Stats is the admin dashboard entity summary.
type Stats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalRecipes     int `json:"totalRecipes"`
	TotalIngredients int `json:"totalIngredients"`
	TotalMealPlans   int `json:"totalMealPlans"`
}

// AdminService serves the admin dashboard endpoints.
type AdminService struct {
	Store     store.Store
	StartedAt time.Time
}

// Stats counts the main entities.
func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return Stats{}, err
	}
	recipes, err := s.Store.Recipes().CountRecipes(ctx)
	if err != nil {
		return Stats{}, err
	}
	ingredients, err := s.Store.Ingredients().CountIngredients(ctx)
	if err != nil {
		return Stats{}, err
	}
	mealPlans, err := s.Store.MealPlans().CountMealPlans(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalUsers:       users,
		TotalRecipes:     recipes,
		TotalIngredients: ingredients,
		TotalMealPlans:   mealPlans,
	}, nil
}

// Health reports liveness of the database plus process uptime.
type Health struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

func (s *AdminService) Health(ctx context.Context) (Health, error) {
	if err := s.Store.Ping(ctx); err != nil {
		return Health{Status: "degraded", UptimeSeconds: time.Since(s.StartedAt).Seconds()}, nil
	}
	return Health{Status: "healthy", UptimeSeconds: time.Since(s.StartedAt).Seconds()}, nil
}
