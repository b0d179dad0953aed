package story_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/mocks"
	"wedding-feed/internal/service/story"
)

func TestStoryService_Create(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("Sets Expiry", func(t *testing.T) {
		mockRepo := new(mocks.StoryRepository)
		svc := story.NewService(mockRepo, nil)

		before := time.Now()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Story) bool {
			return s.AuthorID == authorID && s.ExpiresAt.After(before.Add(domain.StoryLifetime-time.Minute))
		})).Return(nil).Once()

		created, err := svc.Create(ctx, authorID, domain.CreateStoryInput{
			MediaURL:  "https://cdn.example.com/wedding-media/abc",
			MediaType: domain.MediaPhoto,
		})

		assert.NoError(t, err)
		assert.WithinDuration(t, before.Add(domain.StoryLifetime), created.ExpiresAt, time.Minute)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Text Not Allowed", func(t *testing.T) {
		mockRepo := new(mocks.StoryRepository)
		svc := story.NewService(mockRepo, nil)

		_, err := svc.Create(ctx, authorID, domain.CreateStoryInput{
			MediaURL:  "https://cdn.example.com/wedding-media/abc",
			MediaType: domain.MediaText,
		})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Media URL Required", func(t *testing.T) {
		mockRepo := new(mocks.StoryRepository)
		svc := story.NewService(mockRepo, nil)

		_, err := svc.Create(ctx, authorID, domain.CreateStoryInput{
			MediaType: domain.MediaVideo,
		})

		assert.Error(t, err)
	})
}

func TestStoryService_SweepExpired(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(mocks.StoryRepository)
	svc := story.NewService(mockRepo, nil)

	mockRepo.On("DeleteExpired", ctx).Return(int64(4), nil).Once()

	err := svc.SweepExpired(ctx)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
