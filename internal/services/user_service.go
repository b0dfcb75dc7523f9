package services

import (
	"context"
	"errors"
	"strings"

	"dailydiet/internal/apperrors"
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RegisterInput is the payload accepted when a user signs up.
type RegisterInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,max=255"`
}

// UserService is the user registry: it signs users up and hands out tokens.
type UserService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		validate: newValidator(),
	}
}

// Register creates a user and returns the token that identifies them from
// now on.
//
// The email pre-check is not atomic with the insert. Two concurrent sign-ups
// with the same address are resolved by the store's unique index, which is
// reported as ErrDuplicateContact as well.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (models.Token, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateStruct(s.validate, input); err != nil {
		return "", err
	}

	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return "", apperrors.ErrDuplicateContact
	case !errors.Is(err, repositories.ErrRecordNotFound):
		return "", apperrors.NewStorageError("lookup user", err)
	}

	user := &models.User{
		ID:    uuid.New().String(),
		Name:  input.Name,
		Email: input.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return "", apperrors.ErrDuplicateContact
		}
		return "", apperrors.NewStorageError("create user", err)
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return models.Token(user.ID), nil
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("list users", err)
	}
	return users, nil
}
