package services

import (
	"context"
	"errors"

	"dailydiet/internal/apperrors"
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
)

// Access is the outcome of checking a token against a meal.
type Access int

const (
	// AccessNotFound means no meal has the given ID.
	AccessNotFound Access = iota
	// AccessForbidden means the meal exists but is owned by another user.
	AccessForbidden
	// AccessAuthorized means the meal exists and is owned by the token's user.
	AccessAuthorized
)

func (a Access) String() string {
	switch a {
	case AccessForbidden:
		return "forbidden"
	case AccessAuthorized:
		return "authorized"
	default:
		return "not_found"
	}
}

// Err converts a denied access into its error kind.
func (a Access) Err() error {
	switch a {
	case AccessNotFound:
		return apperrors.ErrNotFound
	case AccessForbidden:
		return apperrors.ErrForbidden
	default:
		return nil
	}
}

// Authorize classifies the token's access to a meal. Existence is decided
// before ownership so a foreign meal is never reported as missing. The meal
// is returned only when access is authorized.
func (s *MealService) Authorize(ctx context.Context, token models.Token, mealID string) (Access, *models.Meal, error) {
	if token.IsZero() {
		return AccessForbidden, nil, apperrors.ErrUnauthorized
	}
	meal, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return AccessNotFound, nil, nil
		}
		return AccessNotFound, nil, apperrors.NewStorageError("get meal", err)
	}
	if meal.UserID != token.UserID() {
		return AccessForbidden, nil, nil
	}
	return AccessAuthorized, meal, nil
}

// authorized runs Authorize and folds a denied access into an error.
func (s *MealService) authorized(ctx context.Context, token models.Token, mealID string) (*models.Meal, error) {
	access, meal, err := s.Authorize(ctx, token, mealID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}
	return meal, nil
}
