package repository

import (
	"context"

	"gorm.io/gorm"

	"inkwell/internal/model"
)

// LikeRepository defines persistence operations for likes. Rows are toggled
// via IsDeleted, never removed here; hard removal only happens through the
// post and user cascades.
type LikeRepository interface {
	Create(ctx context.Context, like *model.Like) error
	FindByID(ctx context.Context, id uint) (*model.Like, error)
	FindByUserAndPost(ctx context.Context, userID, postID uint) (*model.Like, error)
	Update(ctx context.Context, like *model.Like) error
	CountActiveByPost(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository builds a GORM-backed repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) FindByID(ctx context.Context, id uint) (*model.Like, error) {
	var like model.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// FindByUserAndPost returns the row for the pair whether it is active or
// deactivated; the toggle needs to see both states.
func (r *likeRepository) FindByUserAndPost(ctx context.Context, userID, postID uint) (*model.Like, error) {
	var like model.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Update(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Save(like).Error
}

func (r *likeRepository) CountActiveByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error
	return count, err
}
