package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) FindAggregateByID(ctx context.Context, id uint) (*repository.PostAggregate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PostAggregate), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateAvailableAt(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.PostListFilter) ([]repository.PostAggregate, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.PostAggregate), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) MostLiked(ctx context.Context, since, now time.Time, limit int) ([]repository.PostAggregate, error) {
	args := m.Called(ctx, since, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PostAggregate), args.Error(1)
}

func aggregateFor(post *model.Post, authorName string, totalLikes int64) *repository.PostAggregate {
	return &repository.PostAggregate{
		Post:       *post,
		AuthorName: authorName,
		TotalLikes: totalLikes,
	}
}

func TestPostService_GetPost(t *testing.T) {
	t.Run("attaches author identity and like count", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		post := &model.Post{ID: 3, UserID: 1, Title: "Hello", AvailableAt: time.Now()}
		mockRepo.On("FindAggregateByID", mock.Anything, uint(3)).Return(aggregateFor(post, "Ada Byron", 4), nil)

		svc := NewPostService(mockRepo, nil)
		view, err := svc.GetPost(context.Background(), 3)

		assert.NoError(t, err)
		assert.Equal(t, uint(3), view.ID)
		assert.Equal(t, model.UserSummary{ID: 1, Name: "Ada Byron"}, view.Author)
		assert.Equal(t, int64(4), view.TotalLikes)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindAggregateByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPostService(mockRepo, nil)
		view, err := svc.GetPost(context.Background(), 99)

		assert.Nil(t, view)
		assert.Equal(t, apperrors.ErrPostNotFound, err)
	})
}

func TestPostService_ListPosts(t *testing.T) {
	tests := []struct {
		name           string
		in             ListPostsInput
		expectedLimit  int
		expectedOffset int
	}{
		{
			name:           "defaults applied",
			in:             ListPostsInput{},
			expectedLimit:  20,
			expectedOffset: 0,
		},
		{
			name:           "limit capped",
			in:             ListPostsInput{Limit: 500, Offset: 40},
			expectedLimit:  100,
			expectedOffset: 40,
		},
		{
			name:           "negative offset reset",
			in:             ListPostsInput{Limit: 10, Offset: -5},
			expectedLimit:  10,
			expectedOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.PostListFilter) bool {
				return f.Limit == tt.expectedLimit &&
					f.Offset == tt.expectedOffset &&
					f.IncludeScheduled == tt.in.IncludeScheduled &&
					!f.Now.IsZero()
			})).Return([]repository.PostAggregate{}, int64(0), nil)

			svc := NewPostService(mockRepo, nil)
			page, err := svc.ListPosts(context.Background(), tt.in)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedLimit, page.Limit)
			assert.Equal(t, tt.expectedOffset, page.Offset)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	post := func() *model.Post {
		return &model.Post{ID: 5, UserID: 1, Title: "Old", Content: "old body", AvailableAt: time.Now()}
	}

	t.Run("owner may update", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		p := post()
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(p, nil)
		mockRepo.On("Update", mock.Anything, p).Return(nil)
		mockRepo.On("FindAggregateByID", mock.Anything, uint(5)).Return(aggregateFor(p, "Ada Byron", 0), nil)

		svc := NewPostService(mockRepo, nil)
		view, err := svc.UpdatePost(context.Background(), 5, 1, UpdatePostInput{Title: "New", Summary: "s", Content: "new body"})

		assert.NoError(t, err)
		assert.Equal(t, "New", p.Title)
		assert.Equal(t, "new body", p.Content)
		assert.NotNil(t, view)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(post(), nil)

		svc := NewPostService(mockRepo, nil)
		_, err := svc.UpdatePost(context.Background(), 5, 2, UpdatePostInput{Title: "New", Content: "new body"})

		assert.Equal(t, apperrors.ErrAccessDenied, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing post reported before ownership", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPostService(mockRepo, nil)
		_, err := svc.UpdatePost(context.Background(), 5, 2, UpdatePostInput{Title: "New", Content: "new body"})

		assert.Equal(t, apperrors.ErrPostNotFound, err)
	})
}

func TestPostService_SchedulePost(t *testing.T) {
	owned := &model.Post{ID: 8, UserID: 1, AvailableAt: time.Now()}

	tests := []struct {
		name          string
		callerID      uint
		at            time.Time
		expectedError error
	}{
		{
			name:     "valid future date",
			callerID: 1,
			at:       time.Now().Add(48 * time.Hour),
		},
		{
			name:          "date in the past",
			callerID:      1,
			at:            time.Now().Add(-time.Hour),
			expectedError: apperrors.ErrSchedulePast,
		},
		{
			name:          "more than a year ahead",
			callerID:      1,
			at:            time.Now().Add(370 * 24 * time.Hour),
			expectedError: apperrors.ErrScheduleTooFar,
		},
		{
			name:          "non-owner denied",
			callerID:      2,
			at:            time.Now().Add(48 * time.Hour),
			expectedError: apperrors.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			mockRepo.On("FindByID", mock.Anything, uint(8)).Return(owned, nil)
			if tt.expectedError == nil {
				mockRepo.On("UpdateAvailableAt", mock.Anything, uint(8), tt.at).Return(nil)
				mockRepo.On("FindAggregateByID", mock.Anything, uint(8)).Return(aggregateFor(owned, "Ada Byron", 0), nil)
			}

			svc := NewPostService(mockRepo, nil)
			_, err := svc.SchedulePost(context.Background(), 8, tt.callerID, tt.at)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				mockRepo.AssertNotCalled(t, "UpdateAvailableAt", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				mockRepo.AssertExpectations(t)
			}
		})
	}
}

func TestPostService_DeletePost(t *testing.T) {
	owned := &model.Post{ID: 9, UserID: 1}

	t.Run("non-owner denied", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(owned, nil)

		svc := NewPostService(mockRepo, nil)
		err := svc.DeletePost(context.Background(), 9, 2)

		assert.Equal(t, apperrors.ErrAccessDenied, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(owned, nil)
		mockRepo.On("Delete", mock.Anything, uint(9)).Return(nil)

		svc := NewPostService(mockRepo, nil)
		err := svc.DeletePost(context.Background(), 9, 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestPostService_MostLiked_Defaults(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("MostLiked", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		// Default window is 30 days back from now.
		expected := time.Now().Add(-DefaultMostLikedWindow)
		return since.Sub(expected) < time.Minute && expected.Sub(since) < time.Minute
	}), mock.Anything, 10).Return([]repository.PostAggregate{}, nil)

	svc := NewPostService(mockRepo, nil)
	posts, err := svc.MostLiked(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Empty(t, posts)
	mockRepo.AssertExpectations(t)
}
