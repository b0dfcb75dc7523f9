package repositories

import (
	"context"

	"dailydiet/internal/models"
)

// MealRepository defines the interface for meal data access. GetByID is
// ownership agnostic; scoping to a user is the caller's job.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	GetByID(ctx context.Context, id string) (*models.Meal, error)
	ListByUser(ctx context.Context, userID string) ([]models.Meal, error)
	Update(ctx context.Context, id string, patch models.MealPatch) (*models.Meal, error)
	Delete(ctx context.Context, id string) error
}
