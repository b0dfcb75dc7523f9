package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dailydiet/internal/models"

	"github.com/google/uuid"
)

// InMemoryMealRepository is an in-memory implementation of MealRepository.
// Insertion order is kept so listings come back in creation order.
type InMemoryMealRepository struct {
	meals map[string]models.Meal
	order []string
	now   func() time.Time
	mu    sync.RWMutex
}

// NewInMemoryMealRepository creates a new instance of InMemoryMealRepository.
func NewInMemoryMealRepository() *InMemoryMealRepository {
	return &InMemoryMealRepository{
		meals: make(map[string]models.Meal),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a new meal.
func (r *InMemoryMealRepository) Create(_ context.Context, meal *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	if _, exists := r.meals[meal.ID]; exists {
		return fmt.Errorf("failed to create meal: %w", ErrDuplicateKey)
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = r.now()
	}
	r.meals[meal.ID] = *meal
	r.order = append(r.order, meal.ID)
	return nil
}

// GetByID returns a meal by its ID.
func (r *InMemoryMealRepository) GetByID(_ context.Context, id string) (*models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meal, ok := r.meals[id]
	if !ok {
		return nil, fmt.Errorf("meal with ID %s: %w", id, ErrRecordNotFound)
	}
	return &meal, nil
}

// ListByUser returns the user's meals in insertion order.
func (r *InMemoryMealRepository) ListByUser(_ context.Context, userID string) ([]models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meals := []models.Meal{}
	for _, id := range r.order {
		if meal := r.meals[id]; meal.UserID == userID {
			meals = append(meals, meal)
		}
	}
	return meals, nil
}

// Update applies the provided fields to an existing meal.
func (r *InMemoryMealRepository) Update(_ context.Context, id string, patch models.MealPatch) (*models.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meal, ok := r.meals[id]
	if !ok {
		return nil, fmt.Errorf("meal with ID %s not found for update: %w", id, ErrRecordNotFound)
	}
	patch.Apply(&meal)
	r.meals[id] = meal
	return &meal, nil
}

// Delete removes a meal by its ID.
func (r *InMemoryMealRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.meals[id]; !ok {
		return fmt.Errorf("meal with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	delete(r.meals, id)
	for i, mealID := range r.order {
		if mealID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
