package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile operations. All mutations are self-only.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id, callerID uint, name, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, callerID uint, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, id, callerID uint) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateProfile changes name and email. Email uniqueness is pre-checked and
// backstopped by the unique index.
func (s *userService) UpdateProfile(ctx context.Context, id, callerID uint, name, email string) (*model.User, error) {
	user, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, email)
		if err == nil && existing != nil {
			return nil, errors.ErrEmailTaken
		}
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	user.Name = name
	user.Email = email
	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// UpdatePassword verifies the current password before storing a new hash.
func (s *userService) UpdatePassword(ctx context.Context, id, callerID uint, currentPassword, newPassword string) error {
	user, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// DeleteAccount removes the user and cascades to their posts and likes.
func (s *userService) DeleteAccount(ctx context.Context, id, callerID uint) error {
	if _, err := s.findOwned(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) findOwned(ctx context.Context, id, callerID uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !CanMutate(user.ID, callerID) {
		return nil, errors.ErrAccessDenied
	}
	return user, nil
}
