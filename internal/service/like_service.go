package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// ToggleResult is the outcome of a like toggle: the caller's new state and the
// post's active-like total recounted after the transition.
type ToggleResult struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"total_likes"`
}

// LikeService handles like toggling and removal.
type LikeService interface {
	Toggle(ctx context.Context, postID, userID uint) (*ToggleResult, error)
	Remove(ctx context.Context, likeID, callerID uint) error
}

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewLikeService creates a new like service.
func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) LikeService {
	return &likeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

// Toggle moves the (user, post) pair through its three states: no row yet
// creates an active row, an active row is deactivated (liked_at kept), a
// deactivated row is reactivated with a fresh liked_at. The row itself is
// never removed. The returned total is recounted from the store after the
// transition.
func (s *likeService) Toggle(ctx context.Context, postID, userID uint) (*ToggleResult, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	like, err := s.likeRepo.FindByUserAndPost(ctx, userID, postID)
	var liked bool
	switch {
	case err == nil && like.Active():
		like.IsDeleted = true
		if err := s.likeRepo.Update(ctx, like); err != nil {
			return nil, fmt.Errorf("deactivate like: %w", err)
		}
		liked = false
	case err == nil:
		like.IsDeleted = false
		like.LikedAt = time.Now()
		if err := s.likeRepo.Update(ctx, like); err != nil {
			return nil, fmt.Errorf("reactivate like: %w", err)
		}
		liked = true
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		like = &model.Like{
			UserID:  userID,
			PostID:  postID,
			LikedAt: time.Now(),
		}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			// Two first-likes racing: the unique index on (user_id, post_id)
			// rejects the loser, who may retry as a toggle.
			if repository.IsDuplicateKey(err) {
				return nil, errors.ErrLikeConflict
			}
			return nil, fmt.Errorf("create like: %w", err)
		}
		liked = true
	default:
		return nil, fmt.Errorf("find like: %w", err)
	}

	total, err := s.likeRepo.CountActiveByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	_ = s.cache.Delete(ctx, postCacheKey(postID))

	return &ToggleResult{Liked: liked, TotalLikes: total}, nil
}

// Remove deactivates a like by id. Only the like's creator may do so; the
// existence check runs before the ownership check.
func (s *likeService) Remove(ctx context.Context, likeID, callerID uint) error {
	like, err := s.likeRepo.FindByID(ctx, likeID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrLikeNotFound
		}
		return fmt.Errorf("find like: %w", err)
	}

	if !CanMutate(like.UserID, callerID) {
		return errors.ErrAccessDenied
	}

	like.IsDeleted = true
	if err := s.likeRepo.Update(ctx, like); err != nil {
		return fmt.Errorf("deactivate like: %w", err)
	}

	_ = s.cache.Delete(ctx, postCacheKey(like.PostID))
	return nil
}
