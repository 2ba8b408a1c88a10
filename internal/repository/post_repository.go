package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/model"
)

// PostAggregate is a post row joined with its author's name and the count of
// active likes. Counting is grouped per post so joined like rows never inflate
// the post count.
type PostAggregate struct {
	model.Post `gorm:"embedded"`
	AuthorName string `gorm:"column:author_name" json:"-"`
	TotalLikes int64  `gorm:"column:total_likes" json:"total_likes"`
}

// PostListFilter narrows and pages a post listing. Scheduled posts
// (available_at after Now) are excluded unless IncludeScheduled is set; the
// filter is applied in the query so the total reflects only listable rows.
type PostListFilter struct {
	Limit            int
	Offset           int
	IncludeScheduled bool
	UserID           uint // 0 means any author
	Search           string
	Now              time.Time
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindAggregateByID(ctx context.Context, id uint) (*PostAggregate, error)
	Update(ctx context.Context, post *model.Post) error
	UpdateAvailableAt(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter PostListFilter) ([]PostAggregate, int64, error)
	MostLiked(ctx context.Context, since, now time.Time, limit int) ([]PostAggregate, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// aggregateQuery joins author identity and the active-like count onto posts.
func (r *postRepository) aggregateQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.name AS author_name, " +
			"COUNT(DISTINCT CASE WHEN likes.is_deleted = false THEN likes.id END) AS total_likes").
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Group("posts.id, users.name")
}

func (r *postRepository) FindAggregateByID(ctx context.Context, id uint) (*PostAggregate, error) {
	var agg PostAggregate
	err := r.aggregateQuery(ctx).
		Where("posts.id = ?", id).
		Take(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) UpdateAvailableAt(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("available_at", at).Error
}

// Delete removes the post and its likes in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

// applyFilter adds the listing predicates shared by the page and count queries.
func applyFilter(q *gorm.DB, filter PostListFilter) *gorm.DB {
	if !filter.IncludeScheduled {
		q = q.Where("posts.available_at <= ?", filter.Now)
	}
	if filter.UserID != 0 {
		q = q.Where("posts.user_id = ?", filter.UserID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("posts.title LIKE ? OR posts.summary LIKE ?", pattern, pattern)
	}
	return q
}

// List returns one page of aggregates plus the total row count under the same
// filter. Ordering is available_at descending with id ascending as tie-break.
func (r *postRepository) List(ctx context.Context, filter PostListFilter) ([]PostAggregate, int64, error) {
	var total int64
	countQuery := applyFilter(r.db.WithContext(ctx).Model(&model.Post{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var aggs []PostAggregate
	query := applyFilter(r.aggregateQuery(ctx), filter).
		Order("posts.available_at DESC, posts.id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset)
	if err := query.Find(&aggs).Error; err != nil {
		return nil, 0, err
	}
	return aggs, total, nil
}

// MostLiked returns publicly visible posts ranked by active likes received
// since the window start, most liked first, post id ascending on ties. Posts
// with no likes in the window are left out.
func (r *postRepository) MostLiked(ctx context.Context, since, now time.Time, limit int) ([]PostAggregate, error) {
	var aggs []PostAggregate
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.name AS author_name, COUNT(likes.id) AS total_likes").
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("JOIN likes ON likes.post_id = posts.id AND likes.is_deleted = false AND likes.liked_at >= ?", since).
		Where("posts.available_at <= ?", now).
		Group("posts.id, users.name").
		Having("COUNT(likes.id) > 0").
		Order("total_likes DESC, posts.id ASC").
		Limit(limit).
		Find(&aggs).Error
	if err != nil {
		return nil, err
	}
	return aggs, nil
}
