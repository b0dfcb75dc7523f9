package repositories

import (
	"context"
	"fmt"
	"time"

	"dailydiet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMealRepository is a GORM implementation of MealRepository.
type GORMMealRepository struct {
	db *gorm.DB
}

// NewGORMMealRepository creates a new instance of GORMMealRepository.
func NewGORMMealRepository(db *gorm.DB) *GORMMealRepository {
	return &GORMMealRepository{
		db: db,
	}
}

// Create inserts a meal, filling in the ID and creation time when unset.
func (r *GORMMealRepository) Create(ctx context.Context, meal *models.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

// GetByID retrieves a single meal by its ID.
func (r *GORMMealRepository) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get meal by ID %s: %w", id, translate(err))
	}
	return &meal, nil
}

// ListByUser returns the user's meals in creation order. The id breaks ties
// between meals written by different processes in the same microsecond.
func (r *GORMMealRepository) ListByUser(ctx context.Context, userID string) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meals for user %s: %w", userID, err)
	}
	return meals, nil
}

// Update writes only the provided fields and returns the stored meal.
// Updates with a map so that a false is_in_diet is not skipped as a zero value.
func (r *GORMMealRepository) Update(ctx context.Context, id string, patch models.MealPatch) (*models.Meal, error) {
	cols := patch.Columns()
	if len(cols) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Meal{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update meal %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("meal with ID %s not found for update: %w", id, ErrRecordNotFound)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete deletes a meal by its ID.
func (r *GORMMealRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Meal{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("meal with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	return nil
}
