package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"dailydiet/internal/apperrors"
	"dailydiet/internal/cache"
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultMetricsCacheTTL is used when no TTL is configured.
const DefaultMetricsCacheTTL = 5 * time.Minute

// CreateMealInput is the payload accepted when recording a meal.
type CreateMealInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	IsInDiet    *bool  `json:"is_in_diet" validate:"required"`
}

// MealService handles business logic related to meals. Every operation is
// scoped to the user behind the presented token.
type MealService struct {
	mealRepo repositories.MealRepository
	cache    *cache.Client
	events   EventPublisher
	validate *validator.Validate
	cacheTTL time.Duration
	now      func() time.Time
	clock    *creationClock
}

// NewMealService creates a new MealService. cacheClient and events may be nil.
func NewMealService(mealRepo repositories.MealRepository, cacheClient *cache.Client, events EventPublisher, cacheTTL time.Duration) *MealService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultMetricsCacheTTL
	}
	now := func() time.Time { return time.Now().UTC() }
	return &MealService{
		mealRepo: mealRepo,
		cache:    cacheClient,
		events:   events,
		validate: newValidator(),
		cacheTTL: cacheTTL,
		now:      now,
		clock:    newCreationClock(now),
	}
}

// Create records a meal for the token's user and returns its ID.
func (s *MealService) Create(ctx context.Context, token models.Token, input CreateMealInput) (string, error) {
	if token.IsZero() {
		return "", apperrors.ErrUnauthorized
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := validateStruct(s.validate, input); err != nil {
		return "", err
	}

	meal := &models.Meal{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		IsInDiet:    *input.IsInDiet,
		CreatedAt:   s.clock.Next(),
		UserID:      token.UserID(),
	}
	if err := s.mealRepo.Create(ctx, meal); err != nil {
		return "", apperrors.NewStorageError("create meal", err)
	}

	s.invalidateMetrics(ctx, meal.UserID)
	s.publish(EventMealCreated, MealEvent{MealID: meal.ID, UserID: meal.UserID, IsInDiet: meal.IsInDiet})
	return meal.ID, nil
}

// ListForUser returns the token's meals in creation order.
func (s *MealService) ListForUser(ctx context.Context, token models.Token) ([]models.Meal, error) {
	if token.IsZero() {
		return nil, apperrors.ErrUnauthorized
	}
	meals, err := s.mealRepo.ListByUser(ctx, token.UserID())
	if err != nil {
		return nil, apperrors.NewStorageError("list meals", err)
	}
	return meals, nil
}

// Get returns one of the token's meals.
func (s *MealService) Get(ctx context.Context, token models.Token, mealID string) (*models.Meal, error) {
	return s.authorized(ctx, token, mealID)
}

// Update applies the provided fields of patch to one of the token's meals.
func (s *MealService) Update(ctx context.Context, token models.Token, mealID string, patch models.MealPatch) (*models.Meal, error) {
	if _, err := s.authorized(ctx, token, mealID); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, apperrors.ErrEmptyUpdate
	}
	patch = trimPatch(patch)
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	meal, err := s.mealRepo.Update(ctx, mealID, patch)
	if err != nil {
		// The meal can vanish between the ownership check and the write.
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("update meal", err)
	}

	s.invalidateMetrics(ctx, meal.UserID)
	s.publish(EventMealUpdated, MealEvent{MealID: meal.ID, UserID: meal.UserID, IsInDiet: meal.IsInDiet})
	return meal, nil
}

// Delete removes one of the token's meals.
func (s *MealService) Delete(ctx context.Context, token models.Token, mealID string) error {
	meal, err := s.authorized(ctx, token, mealID)
	if err != nil {
		return err
	}
	if err := s.mealRepo.Delete(ctx, mealID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewStorageError("delete meal", err)
	}

	s.invalidateMetrics(ctx, meal.UserID)
	s.publish(EventMealDeleted, MealEvent{MealID: meal.ID, UserID: meal.UserID, IsInDiet: meal.IsInDiet})
	return nil
}

func (s *MealService) invalidateMetrics(ctx context.Context, userID string) {
	_ = s.cache.Incr(ctx, metricsGenerationKey(userID))
}

func trimPatch(patch models.MealPatch) models.MealPatch {
	if patch.Name.Set {
		patch.Name.Value = strings.TrimSpace(patch.Name.Value)
	}
	if patch.Description.Set {
		patch.Description.Value = strings.TrimSpace(patch.Description.Value)
	}
	return patch
}

func validatePatch(patch models.MealPatch) error {
	verr := &apperrors.ValidationError{Fields: map[string]string{}}
	checkText(verr, "name", patch.Name, 100)
	checkText(verr, "description", patch.Description, 500)
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func checkText(verr *apperrors.ValidationError, field string, value models.Optional[string], maxLen int) {
	switch {
	case !value.Set:
	case value.Value == "":
		verr.Fields[field] = "must not be empty"
	case utf8.RuneCountInString(value.Value) > maxLen:
		verr.Fields[field] = fmt.Sprintf("must be at most %d characters", maxLen)
	}
}
