package services_test

import (
	"context"
	"fmt"
	"testing"

	"dailydiet/internal/apperrors"
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
	"dailydiet/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

var ctx = context.Background()

func TestUserService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)
	input := services.RegisterInput{Name: "Ana", Email: "ana@example.com"}

	// Test successful registration
	mockRepo.On("GetByEmail", ctx, input.Email).Return(nil, repositories.ErrRecordNotFound).Once()
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.ID != "" && u.Name == "Ana" && u.Email == "ana@example.com"
	})).Return(nil).Once()

	token, err := service.Register(ctx, input)
	assert.NoError(t, err)
	assert.False(t, token.IsZero())
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", ctx, input.Email).Return(&models.User{ID: "1"}, nil).Once()
	token, err = service.Register(ctx, input)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateContact)
	assert.Equal(t, "contact already registered", err.Error())
	assert.True(t, token.IsZero())
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestUserService_RegisterLosesUniquenessRace(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("GetByEmail", ctx, "ana@example.com").Return(nil, repositories.ErrRecordNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("failed to create user: %w", repositories.ErrDuplicateKey)).Once()

	_, err := service.Register(ctx, services.RegisterInput{Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateContact)
	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterValidation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	token, err := service.Register(ctx, services.RegisterInput{Name: "", Email: "ana@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, token.IsZero())

	_, err = service.Register(ctx, services.RegisterInput{Name: "Ana", Email: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "email")

	// Nothing reaches the store when validation fails.
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_RegisterStorageFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("GetByEmail", ctx, "ana@example.com").Return(nil, fmt.Errorf("connection refused")).Once()

	_, err := service.Register(ctx, services.RegisterInput{Name: "Ana", Email: "ana@example.com"})
	var storageErr *apperrors.StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.Contains(t, err.Error(), "connection refused")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_List(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	expectedUsers := []models.User{
		{ID: "1", Name: "Ana", Email: "ana@example.com"},
		{ID: "2", Name: "Bruno", Email: "bruno@example.com"},
	}
	mockRepo.On("GetAll", ctx).Return(expectedUsers, nil).Once()

	users, err := service.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedUsers, users)

	mockRepo.On("GetAll", ctx).Return(nil, fmt.Errorf("database error")).Once()
	users, err = service.List(ctx)
	assert.Nil(t, users)
	var storageErr *apperrors.StorageError
	assert.ErrorAs(t, err, &storageErr)
	mockRepo.AssertExpectations(t)
}
