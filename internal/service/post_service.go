package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const (
	postCacheTTL      = 5 * time.Minute
	mostLikedCacheTTL = time.Minute

	// DefaultMostLikedWindow bounds the most-liked ranking to recent activity.
	DefaultMostLikedWindow = 30 * 24 * time.Hour

	defaultPageSize = 20
	maxPageSize     = 100
)

// PostView is the read shape for a single post: the row plus its author's
// minimal identity and the count of active likes.
type PostView struct {
	ID          uint              `json:"id"`
	Author      model.UserSummary `json:"author"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary"`
	Content     string            `json:"content"`
	AvailableAt time.Time         `json:"available_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	TotalLikes  int64             `json:"total_likes"`
}

// PostPage is one page of a listing; Total counts every row matching the
// filter, not just the page.
type PostPage struct {
	Items  []PostView `json:"items"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// CreatePostInput carries the writable fields for creation. A zero
// AvailableAt publishes immediately; a future one creates a scheduled post.
type CreatePostInput struct {
	Title       string
	Summary     string
	Content     string
	AvailableAt time.Time
}

// UpdatePostInput carries the fields the owner may rewrite. Ownership and
// availability are changed through dedicated operations, never here.
type UpdatePostInput struct {
	Title   string
	Summary string
	Content string
}

// ListPostsInput narrows and pages a listing request.
type ListPostsInput struct {
	Limit            int
	Offset           int
	IncludeScheduled bool
	UserID           uint
	Search           string
}

// PostService handles post CRUD, scheduling, and read assembly.
type PostService interface {
	CreatePost(ctx context.Context, ownerID uint, in CreatePostInput) (*PostView, error)
	GetPost(ctx context.Context, id uint) (*PostView, error)
	ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error)
	UpdatePost(ctx context.Context, id, callerID uint, in UpdatePostInput) (*PostView, error)
	SchedulePost(ctx context.Context, id, callerID uint, at time.Time) (*PostView, error)
	DeletePost(ctx context.Context, id, callerID uint) error
	MostLiked(ctx context.Context, window time.Duration, limit int) ([]PostView, error)
}

type postService struct {
	postRepo repository.PostRepository
	cache    *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, cache *cache.Client) PostService {
	return &postService{postRepo: postRepo, cache: cache}
}

func postCacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func mostLikedCacheKey(window time.Duration, limit int) string {
	return fmt.Sprintf("posts:most_liked:%d:%d", int64(window.Seconds()), limit)
}

func viewFromAggregate(agg *repository.PostAggregate) PostView {
	return PostView{
		ID:          agg.ID,
		Author:      model.UserSummary{ID: agg.UserID, Name: agg.AuthorName},
		Title:       agg.Title,
		Summary:     agg.Summary,
		Content:     agg.Content,
		AvailableAt: agg.AvailableAt,
		CreatedAt:   agg.CreatedAt,
		UpdatedAt:   agg.UpdatedAt,
		TotalLikes:  agg.TotalLikes,
	}
}

func (s *postService) CreatePost(ctx context.Context, ownerID uint, in CreatePostInput) (*PostView, error) {
	availableAt := in.AvailableAt
	if availableAt.IsZero() {
		availableAt = time.Now()
	}

	post := &model.Post{
		UserID:      ownerID,
		Title:       in.Title,
		Summary:     in.Summary,
		Content:     in.Content,
		AvailableAt: availableAt,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.freshView(ctx, post.ID)
}

// GetPost returns the aggregate view, served from cache when possible. Every
// like toggle and post mutation invalidates the cached entry.
func (s *postService) GetPost(ctx context.Context, id uint) (*PostView, error) {
	if data, _ := s.cache.Get(ctx, postCacheKey(id)); data != nil {
		var cached PostView
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	agg, err := s.postRepo.FindAggregateByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	view := viewFromAggregate(agg)
	if payload, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, postCacheKey(id), payload, postCacheTTL)
	}
	return &view, nil
}

func (s *postService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	aggs, total, err := s.postRepo.List(ctx, repository.PostListFilter{
		Limit:            limit,
		Offset:           offset,
		IncludeScheduled: in.IncludeScheduled,
		UserID:           in.UserID,
		Search:           in.Search,
		Now:              time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	items := make([]PostView, 0, len(aggs))
	for i := range aggs {
		items = append(items, viewFromAggregate(&aggs[i]))
	}
	return &PostPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *postService) UpdatePost(ctx context.Context, id, callerID uint, in UpdatePostInput) (*PostView, error) {
	post, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Summary = in.Summary
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	_ = s.cache.Delete(ctx, postCacheKey(id))
	return s.freshView(ctx, id)
}

// SchedulePost moves the post's availability to a future instant, at most one
// year ahead. Owner-only.
func (s *postService) SchedulePost(ctx context.Context, id, callerID uint, at time.Time) (*PostView, error) {
	if _, err := s.findOwned(ctx, id, callerID); err != nil {
		return nil, err
	}

	if err := ValidateSchedule(at, time.Now()); err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateAvailableAt(ctx, id, at); err != nil {
		return nil, fmt.Errorf("schedule post: %w", err)
	}

	_ = s.cache.Delete(ctx, postCacheKey(id))
	return s.freshView(ctx, id)
}

func (s *postService) DeletePost(ctx context.Context, id, callerID uint) error {
	if _, err := s.findOwned(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	_ = s.cache.Delete(ctx, postCacheKey(id))
	return nil
}

func (s *postService) MostLiked(ctx context.Context, window time.Duration, limit int) ([]PostView, error) {
	if window <= 0 {
		window = DefaultMostLikedWindow
	}
	if limit <= 0 {
		limit = 10
	}

	key := mostLikedCacheKey(window, limit)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []PostView
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	now := time.Now()
	aggs, err := s.postRepo.MostLiked(ctx, now.Add(-window), now, limit)
	if err != nil {
		return nil, fmt.Errorf("most liked posts: %w", err)
	}

	items := make([]PostView, 0, len(aggs))
	for i := range aggs {
		items = append(items, viewFromAggregate(&aggs[i]))
	}
	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, key, payload, mostLikedCacheTTL)
	}
	return items, nil
}

// findOwned loads the post and enforces ownership, existence first.
func (s *postService) findOwned(ctx context.Context, id, callerID uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if !CanMutate(post.UserID, callerID) {
		return nil, errors.ErrAccessDenied
	}
	return post, nil
}

// freshView rebuilds the aggregate after a write so the response reflects the
// persisted row.
func (s *postService) freshView(ctx context.Context, id uint) (*PostView, error) {
	agg, err := s.postRepo.FindAggregateByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload post: %w", err)
	}
	view := viewFromAggregate(agg)
	return &view, nil
}
