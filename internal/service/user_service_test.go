package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	current := func() *model.User {
		return &model.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	}

	t.Run("self update succeeds", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		u := current()
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(u, nil)
		mockRepo.On("FindByEmail", mock.Anything, "countess@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Update", mock.Anything, u).Return(nil)

		svc := NewUserService(mockRepo, nil)
		updated, err := svc.UpdateProfile(context.Background(), 1, 1, "Ada Lovelace", "countess@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", updated.Name)
		assert.Equal(t, "countess@example.com", updated.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("email collision rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
		mockRepo.On("FindByEmail", mock.Anything, "grace@example.com").Return(&model.User{ID: 2, Email: "grace@example.com"}, nil)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.UpdateProfile(context.Background(), 1, 1, "Ada", "grace@example.com")

		assert.Equal(t, apperrors.ErrEmailTaken, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("other caller denied", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.UpdateProfile(context.Background(), 1, 2, "Mallory", "mallory@example.com")

		assert.Equal(t, apperrors.ErrAccessDenied, err)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, PasswordHash: string(hashed)}, nil)

		svc := NewUserService(mockRepo, nil)
		err := svc.UpdatePassword(context.Background(), 1, 1, "not-the-password", "new-password")

		assert.Equal(t, ErrInvalidCredentials, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("stores a new hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		u := &model.User{ID: 1, PasswordHash: string(hashed)}
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(u, nil)
		mockRepo.On("Update", mock.Anything, u).Return(nil)

		svc := NewUserService(mockRepo, nil)
		err := svc.UpdatePassword(context.Background(), 1, 1, "old-password", "new-password")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")))
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Run("self delete cascades through repository", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		svc := NewUserService(mockRepo, nil)
		err := svc.DeleteAccount(context.Background(), 1, 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("other caller denied", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)

		svc := NewUserService(mockRepo, nil)
		err := svc.DeleteAccount(context.Background(), 1, 2)

		assert.Equal(t, apperrors.ErrAccessDenied, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		err := svc.DeleteAccount(context.Background(), 1, 1)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}
